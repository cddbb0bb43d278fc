package adminControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/Rangsey10/sport-jerseys-api/store"
)

// ExportOrdersToExcel streams the order book as an xlsx workbook, one row
// per order line, for back-office reporting.
func ExportOrdersToExcel(orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.ListAll(c.Request.Context(), "")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"OrderID", "UserEmail", "UserName", "Status", "TotalAmount",
			"ProductName", "Size", "Quantity", "UnitPrice", "LineTotal",
			"CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, order := range list {
			view := adminView(order)
			for _, item := range order.Items {
				row := sheet.AddRow()
				row.AddCell().SetValue(order.ID)
				row.AddCell().SetValue(view.UserEmail)
				row.AddCell().SetValue(view.UserName)
				row.AddCell().SetValue(string(order.Status))
				row.AddCell().SetValue(order.TotalAmount.StringFixed(2))
				row.AddCell().SetValue(item.ProductName)
				row.AddCell().SetValue(item.Size)
				row.AddCell().SetValue(item.Quantity)
				row.AddCell().SetValue(item.UnitPrice.StringFixed(2))
				row.AddCell().SetValue(item.TotalPrice.StringFixed(2))
				row.AddCell().SetValue(order.CreatedAt.Format(time.RFC3339))
			}
		}

		filename := "orders_" + time.Now().Format("2006-01-02") + ".xlsx"
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}
