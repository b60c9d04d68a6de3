package catalog

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/goliatone/go-errors"
)

// SpecSheet renders a product's spec sheet PDF. The price line follows the
// same rule as the JSON surface: present only for authenticated callers, and
// silently dropped when the stored ciphertext cannot be decrypted.
type SpecSheet struct {
	cipher *PriceCipher
	logger Logger
}

// NewSpecSheet creates the PDF renderer
func NewSpecSheet(cipher *PriceCipher) *SpecSheet {
	return &SpecSheet{
		cipher: cipher,
		logger: defLogger{},
	}
}

func (s *SpecSheet) WithLogger(logger Logger) *SpecSheet {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Render produces the PDF document bytes
func (s *SpecSheet) Render(product *Product, auth *AuthContext) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Product Spec Sheet", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Product Information", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "Name: "+product.Name, "", "L", false)
	pdf.MultiCell(0, 6, "Description: "+product.Description, "", "L", false)

	if auth != nil && auth.Authenticated {
		if amount, err := s.cipher.Decrypt(product.Price); err != nil {
			s.logger.Error("failed to decrypt price for spec sheet", "product_id", product.ID, "error", err)
		} else {
			pdf.MultiCell(0, 6, fmt.Sprintf("Price: $%.2f", amount), "", "L", false)
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Technical Details", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)

	if len(product.TechnicalDetails) == 0 {
		pdf.MultiCell(0, 6, "No technical details available for this product.", "", "L", false)
	} else {
		keys := make([]string, 0, len(product.TechnicalDetails))
		for key := range product.TechnicalDetails {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			pdf.MultiCell(0, 6, fmt.Sprintf("%s: %v", key, product.TechnicalDetails[key]), "", "L", false)
		}
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated on: "+time.Now().Format("2006-01-02"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to render spec sheet")
	}

	return buf.Bytes(), nil
}
