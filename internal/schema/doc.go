// Package schema loads union declarations from structured schema files.
//
// Schema files are named *.sumtype.yaml, *.sumtype.yml, *.sumtype.json or
// *.sumtype.toml and are decoded by extension:
//
//	package: payment
//	imports:
//	  - example.com/models
//	unions:
//	  - name: Payment
//	    tag: uint8          # width name or numeric selector
//	    aot: false          # generated by the pregen pass when true
//	    variants:
//	      - type: PaymentCard
//	        name: Card
//	      - type: PaymentCash
//	      - type: "*int"
//	        name: Count
//	        nullable: true
//	        equality: comparable   # comparable | method | deep | dynamic
//	    empty: [Pending, Failed]
//
// Every value in a schema file is structured, so schema declarations never
// need raw-text recovery. Semantic checks (names, collisions, tag width)
// are left to the builder.
package schema
