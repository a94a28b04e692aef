// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/socdefainder-oss/pronto-backend/internal/config"
	"github.com/socdefainder-oss/pronto-backend/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateReceipt generates a PDF receipt for an order
func (s *Service) GenerateReceipt(o *order.Order) (*bytes.Buffer, error) {
	data := receiptData{
		ReceiptNumber: fmt.Sprintf("REC-%s", o.OrderNumber),
		IssuedAt:      time.Now().Format("January 2, 2006 15:04"),
		Order:         o,
		Restaurant: restaurantInfo{
			Name:    s.config.App.RestaurantName,
			Address: s.config.App.RestaurantAddress,
			Phone:   s.config.App.RestaurantPhone,
		},
		Subtotal: formatCents(o.SubtotalAmount),
		Discount: formatCents(o.DiscountAmount),
		Delivery: formatCents(o.DeliveryFeeAmount),
		Total:    formatCents(o.TotalAmount),
	}
	for _, line := range o.Items {
		data.Items = append(data.Items, receiptItem{
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    formatCents(line.Price),
			Total:    formatCents(line.TotalPrice),
		})
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data receiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func formatCents(amount int64) string {
	return fmt.Sprintf("R$ %.2f", float64(amount)/100)
}

// receiptData represents the data passed to the receipt template
type receiptData struct {
	ReceiptNumber string
	IssuedAt      string
	Order         *order.Order
	Restaurant    restaurantInfo
	Items         []receiptItem
	Subtotal      string
	Discount      string
	Delivery      string
	Total         string
}

type restaurantInfo struct {
	Name    string
	Address string
	Phone   string
}

type receiptItem struct {
	Name     string
	Quantity int
	Price    string
	Total    string
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .receipt-title {
            font-size: 28px;
            font-weight: bold;
            color: #b91c1c;
            margin-bottom: 10px;
        }
        .details table {
            width: 100%;
            margin-bottom: 30px;
        }
        .details td {
            padding: 5px 0;
            vertical-align: top;
        }
        .details .label {
            font-weight: bold;
            width: 150px;
        }
        .items-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .items-table th,
        .items-table td {
            border: 1px solid #ddd;
            padding: 12px 8px;
            text-align: left;
        }
        .items-table th {
            background-color: #f8f9fa;
            font-weight: bold;
        }
        .items-table .qty-col,
        .items-table .price-col,
        .items-table .total-col {
            text-align: right;
            width: 90px;
        }
        .totals {
            float: right;
            width: 300px;
        }
        .totals table {
            width: 100%;
            border-collapse: collapse;
        }
        .totals td {
            padding: 8px;
            border-bottom: 1px solid #eee;
        }
        .totals .label {
            text-align: right;
            font-weight: bold;
        }
        .totals .amount {
            text-align: right;
            width: 110px;
        }
        .total-row {
            font-size: 18px;
            font-weight: bold;
            border-top: 2px solid #333 !important;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            text-align: center;
            color: #666;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1>{{.Restaurant.Name}}</h1>
            <p>{{.Restaurant.Address}}</p>
            <p>Phone: {{.Restaurant.Phone}}</p>
        </div>
        <div style="text-align: right;">
            <div class="receipt-title">RECEIPT</div>
            <p><strong>Receipt #:</strong> {{.ReceiptNumber}}</p>
            <p><strong>Issued:</strong> {{.IssuedAt}}</p>
            <p><strong>Order #:</strong> {{.Order.OrderNumber}}</p>
        </div>
    </div>

    <div class="details">
        <table>
            <tr>
                <td class="label">Customer:</td>
                <td>{{.Order.CustomerName}}</td>
                <td class="label" style="text-align: right;">Phone:</td>
                <td style="text-align: right;">{{.Order.CustomerPhone}}</td>
            </tr>
            <tr>
                <td class="label">Order Date:</td>
                <td>{{.Order.CreatedAt.Format "January 2, 2006 15:04"}}</td>
                <td class="label" style="text-align: right;">Payment:</td>
                <td style="text-align: right;">{{.Order.PaymentMethod}} ({{.Order.PaymentStatus}})</td>
            </tr>
            <tr>
                <td class="label">Delivery:</td>
                <td>{{.Order.DeliveryType}}</td>
                {{if .Order.Address}}
                <td class="label" style="text-align: right;">Address:</td>
                <td style="text-align: right;">{{.Order.Address.Street}}, {{.Order.Address.Number}} - {{.Order.Address.District}}, {{.Order.Address.City}}/{{.Order.Address.State}}</td>
                {{end}}
            </tr>
        </table>
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="qty-col">Qty</th>
                <th class="price-col">Price</th>
                <th class="total-col">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Items}}
            <tr>
                <td><strong>{{.Name}}</strong></td>
                <td class="qty-col">{{.Quantity}}</td>
                <td class="price-col">{{.Price}}</td>
                <td class="total-col">{{.Total}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr>
                <td class="label">Subtotal:</td>
                <td class="amount">{{.Subtotal}}</td>
            </tr>
            {{if gt .Order.DiscountAmount 0}}
            <tr>
                <td class="label">Discount{{if .Order.CouponCode}} ({{.Order.CouponCode}}){{end}}:</td>
                <td class="amount">-{{.Discount}}</td>
            </tr>
            {{end}}
            {{if gt .Order.DeliveryFeeAmount 0}}
            <tr>
                <td class="label">Delivery:</td>
                <td class="amount">{{.Delivery}}</td>
            </tr>
            {{end}}
            <tr class="total-row">
                <td class="label">Total:</td>
                <td class="amount">{{.Total}}</td>
            </tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Thank you for ordering with {{.Restaurant.Name}}!</p>
    </div>
</body>
</html>
`
