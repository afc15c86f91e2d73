package infra

// pdf.go — daily cash report generation using go-pdf/fpdf.
// One A5 page per report: header with admin and operational date, one row per
// canonical movement type, entradas/salidas subtotals and the closing balance.
// The output file is saved to storagePath/reporte_{admin}_{fecha}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"cobranza/internal/dto"
	"cobranza/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateReporteDiarioPDF renders one day's ledger summary for an admin.
// Returns the absolute path to the generated file.
func GenerateReporteDiarioPDF(resumen *dto.ResumenDiaResponse, apertura, cierre decimal.Decimal, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("reporte_%s_%s.pdf", resumen.Admin, resumen.FechaOperacional)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Reporte de Caja", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Admin: %s", resumen.Admin), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Fecha operacional: %s", resumen.FechaOperacional), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Per-type rows ─────────────────────────────────────────────────────────
	col1 := contentW * 0.6
	col2 := contentW * 0.4

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Tipo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, t := range model.TiposCanonicos {
		total := resumen.Totales[string(t)]
		pdf.CellFormat(col1, 6, string(t), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "$"+total.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(col1, 6, "Apertura:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "$"+apertura.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1, 6, "Entradas:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "$"+resumen.Entradas.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1, 6, "Salidas:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "-$"+resumen.Salidas.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1, 8, "CIERRE:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 8, "$"+cierre.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
