package manifest

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/gridsheet/internal/messages"
	"github.com/specialistvlad/gridsheet/internal/sheet"
	"github.com/zclconf/go-cty/cty"
)

// Export writes the persistable cells of s as an HCL manifest that Apply
// turns back into the same sheet.
func Export(w io.Writer, s *sheet.Sheet) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	if lang := s.Language(); lang != messages.English {
		block := body.AppendNewBlock("sheet", nil)
		block.Body().SetAttributeValue("language", cty.StringVal(lang.String()))
	}

	for _, rec := range s.Records() {
		if len(body.Blocks()) > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("cell", []string{rec.At.String()})
		if rec.Formula != "" {
			block.Body().SetAttributeValue("formula", cty.StringVal(rec.Formula))
		}
		if rec.Override != sheet.Auto {
			block.Body().SetAttributeValue("type", cty.StringVal(rec.Override.String()))
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
