// Package main provides the CLI entrypoint for entity-schema.
//
// entity-schema checks game records against a directory of layered schemas
// and reads or updates record fields through path expressions:
//   - validate: report implemented schemas, missing and undefined fields
//   - exists / get / set: query and mutate records by path
//   - watch: re-validate every record whenever a schema file changes
package main

func main() {
	Execute()
}
