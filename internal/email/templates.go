package email

import (
	"fmt"
	"strings"

	"homestock/internal/models"
)

func (s *Service) generateDigestHTML(low, out []models.InventoryItem, settings *models.Settings) string {
	var rows strings.Builder

	writeRows := func(items []models.InventoryItem, badge string) {
		for _, item := range items {
			unit := models.UnitLabel(settings, item.Unit, item.Quantity)
			rows.WriteString(fmt.Sprintf(`
        <tr>
            <td class="item-name">%s</td>
            <td class="item-qty">%d %s</td>
            <td><span class="badge %s">%s</span></td>
        </tr>`, item.Name, item.Quantity, unit, badge, badge))
		}
	}
	writeRows(out, "out-of-stock")
	writeRows(low, "low-stock")

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Stock Alert</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
        }
        .container {
            background-color: white;
            padding: 40px;
            border-radius: 12px;
            box-shadow: 0 2px 10px rgba(0, 0, 0, 0.1);
        }
        .header {
            font-size: 24px;
            color: #2d5e3e;
            margin-bottom: 20px;
        }
        table {
            width: 100%%;
            border-collapse: collapse;
        }
        td {
            padding: 8px 4px;
            border-bottom: 1px solid #eee;
        }
        .item-name {
            font-weight: 500;
        }
        .item-qty {
            color: #666;
        }
        .badge {
            padding: 2px 8px;
            border-radius: 10px;
            font-size: 12px;
        }
        .low-stock {
            background-color: #fff3cd;
            color: #856404;
        }
        .out-of-stock {
            background-color: #f8d7da;
            color: #721c24;
        }
        .footer {
            margin-top: 30px;
            font-size: 13px;
            color: #999;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">Some items need restocking</div>
        <table>%s
        </table>
        <div class="footer">Sent by %s. Adjust minimum quantities in the app to change what triggers this alert.</div>
    </div>
</body>
</html>`, rows.String(), s.senderName)
}

func (s *Service) generateDigestText(low, out []models.InventoryItem, settings *models.Settings) string {
	var b strings.Builder
	b.WriteString("Some items need restocking:\n\n")

	if len(out) > 0 {
		b.WriteString("Out of stock:\n")
		for _, item := range out {
			b.WriteString(fmt.Sprintf("  - %s\n", item.Name))
		}
		b.WriteString("\n")
	}

	if len(low) > 0 {
		b.WriteString("Low stock:\n")
		for _, item := range low {
			unit := models.UnitLabel(settings, item.Unit, item.Quantity)
			b.WriteString(fmt.Sprintf("  - %s (%d %s left)\n", item.Name, item.Quantity, unit))
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Sent by %s.\n", s.senderName))
	return b.String()
}
