// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scenes

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Join merges the per-scene PDFs into a single deck, page k holding
// frame k.
func Join(pdfs []string, outPath string) error {
	if len(pdfs) == 0 {
		return fmt.Errorf("joining %s: no scene PDFs to merge", outPath)
	}
	if err := api.MergeCreateFile(pdfs, outPath, false, nil); err != nil {
		return fmt.Errorf("joining %s: %w", outPath, err)
	}
	return nil
}
