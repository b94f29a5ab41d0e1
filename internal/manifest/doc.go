/*
Package manifest imports and exports sheets as HCL documents.

	sheet {
	  language = "pl"
	}

	cell "A1" {
	  formula = 42
	}

	cell "B2" {
	  formula = "=SUM(A1:A3)"
	  type    = "float"
	}

The optional `sheet` block selects the language of error texts. Every `cell`
block is labelled with its address; `formula` may be any literal and is
converted to its string form, `type` is one of auto, int, float or text.
Cells are replayed as manual edits in document order, so a later block for
the same address overrides an earlier one.
*/
package manifest
