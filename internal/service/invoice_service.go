package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pharmanext/internal/constants"
	"github.com/pharmanext/internal/models"
	"github.com/pharmanext/internal/repository"

	"github.com/jung-kurt/gofpdf"
)

// InvoiceService 发票（PDF 账单）服务
type InvoiceService struct {
	orderRepo      repository.OrderRepository
	settingService *SettingService
}

// NewInvoiceService 创建发票服务
func NewInvoiceService(orderRepo repository.OrderRepository, settingService *SettingService) *InvoiceService {
	return &InvoiceService{orderRepo: orderRepo, settingService: settingService}
}

// BuildForUser 为用户自己的订单生成发票 PDF
func (s *InvoiceService) BuildForUser(orderID uint, userID uint) ([]byte, string, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", ErrInvoiceOrderMissing
	}
	return s.build(order)
}

// BuildForAdmin 为任意订单生成发票 PDF
func (s *InvoiceService) BuildForAdmin(orderID uint) ([]byte, string, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", ErrInvoiceOrderMissing
	}
	return s.build(order)
}

// build 渲染发票正文，返回 PDF 字节与下载文件名
func (s *InvoiceService) build(order *models.Order) ([]byte, string, error) {
	siteName := "PharmaNext"
	footer := ""
	if s.settingService != nil {
		if name, err := s.settingService.GetSiteName(siteName); err == nil {
			siteName = name
		}
		if text, err := s.settingService.GetInvoiceFooter(footer); err == nil {
			footer = text
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, siteName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Invoice "+order.OrderNo, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Placed at "+order.PlacedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, order.BillingName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, order.Address, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, order.City, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, order.Phone, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, order.Email, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(80, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Formulation", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(15, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range order.Items {
		pdf.CellFormat(80, 7, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, item.FormulationType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, item.UnitPrice.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, item.TotalPrice.String(), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(150, 7, "Total ("+order.Currency+")", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, order.AmountPaid.String(), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Payment: "+order.PaymentType, "", 1, "L", false, 0, "")
	if order.TransactionID != "" {
		pdf.CellFormat(0, 5, "Transaction: "+order.TransactionID, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, "Status: "+invoiceStatusLabel(order), "", 1, "L", false, 0, "")

	if strings.TrimSpace(footer) != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, footer, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "invoice-" + order.OrderNo + ".pdf", nil
}

func invoiceStatusLabel(order *models.Order) string {
	if order.Status == constants.OrderStatusPending && order.PaymentType == constants.PaymentTypeCOD {
		return "Pending (payable on delivery)"
	}
	return strings.ToUpper(order.Status[:1]) + order.Status[1:]
}
