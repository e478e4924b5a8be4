// Package invoice は注文の請求書PDFを生成する。
// レイアウトエンジンは持たず、上から順に描くだけ。
package invoice

import (
	"bytes"
	"strconv"

	"storefront/internal/currency"
	"storefront/internal/domain/model"

	"github.com/go-pdf/fpdf"
)

// Render は1注文ぶんのPDFを返す。
// 金額はコアフォントで崩れないよう通貨コード表記（INR 123.00）にする。
func Render(order model.Order) ([]byte, error) {
	symbol := order.Currency + " "

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice #"+order.Number, false)
	pdf.AddPage()

	//ヘッダ
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "INVOICE")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Order #"+order.Number)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Date: "+order.DateCreated)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Status: "+order.Status)
	pdf.Ln(10)

	//請求先
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Billed To")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	b := order.Billing
	for _, line := range []string{
		b.FirstName + " " + b.LastName,
		b.Address1,
		b.Address2,
		b.City + " " + b.State + " " + b.Postcode,
		b.Country,
		b.Email,
		b.Phone,
	} {
		if line == "" || line == " " {
			continue
		}
		pdf.Cell(0, 5, line)
		pdf.Ln(5)
	}
	pdf.Ln(6)

	//明細テーブルのヘッダ
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Total", "1", 1, "R", true, 0, "")

	//明細。単価・合計はカートと同じ価格解決を通す。
	pdf.SetFont("Helvetica", "", 10)
	for _, it := range order.LineItems {
		unit := model.ParsePrice(it.Price)
		total := model.ParsePrice(it.Total)
		if total == 0 {
			total = unit * float64(it.Quantity)
		}

		name := it.Name
		if len(name) > 48 {
			name = name[:45] + "..."
		}

		pdf.CellFormat(90, 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, strconv.FormatInt(it.Quantity, 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, currency.Format(unit, symbol, currency.PositionBefore), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, currency.Format(total, symbol, currency.PositionBefore), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)

	//割引・合計
	if discount := model.ParsePrice(order.DiscountTotal); discount > 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(150, 7, "Discount", "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, "-"+currency.Format(discount, symbol, currency.PositionBefore), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 9, "Grand Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 9, currency.Format(model.ParsePrice(order.Total), symbol, currency.PositionBefore), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
