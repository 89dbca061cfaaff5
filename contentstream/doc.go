// Package contentstream tokenizes PDF page content streams into operations.
//
// A content stream is a postfix program: operands are pushed, then an
// operator consumes them.
//
//	ops, err := contentstream.NewParser(data).Parse()
//	for _, op := range ops {
//	    if op.Operator == "Tj" {
//	        s, _ := op.String(0)
//	        fmt.Printf("%q\n", s)
//	    }
//	}
//
// Operands are one of Number, String, Name, Array, Dict, Bool or Null.
// Inline image data (BI ... ID ... EI) is skipped, so its binary payload
// never reaches the tokenizer.
package contentstream
