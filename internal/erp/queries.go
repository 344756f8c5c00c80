package erp

import (
	"context"
	"fmt"
)

const defaultQueryLimit = 10

// Partner is a customer or vendor entry.
type Partner struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsCompany bool   `json:"is_company"`
	City      string `json:"city,omitempty"`
}

// Invoice is a posted customer or vendor invoice.
type Invoice struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	InvoiceDate string  `json:"invoice_date,omitempty"`
	State       string  `json:"state"`
	AmountTotal float64 `json:"amount_total"`
	MoveType    string  `json:"move_type"`
}

// Order is a sales order summary.
type Order struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	DateOrder   string  `json:"date_order,omitempty"`
	State       string  `json:"state"`
	AmountTotal float64 `json:"amount_total"`
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultQueryLimit
	}
	return limit
}

// searchRead runs a search_read on the model and decodes the rows into out.
func (s *Session) searchRead(ctx context.Context, model string, domain []any, fields []string, limit int, out any) error {
	if domain == nil {
		domain = []any{}
	}
	options := map[string]any{"fields": fields, "limit": clampLimit(limit)}
	if err := s.ExecuteKw(ctx, model, "search_read", []any{domain}, options, out); err != nil {
		return fmt.Errorf("%s search failed: %w", model, err)
	}
	return nil
}

// SearchPartners returns partners matching the domain, newest-id last.
func (s *Session) SearchPartners(ctx context.Context, domain []any, limit int) ([]Partner, error) {
	fields := []string{"name", "email", "phone", "is_company", "city", "country_id"}
	var partners []Partner
	if err := s.searchRead(ctx, "res.partner", domain, fields, limit, &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

// SearchInvoices returns customer and vendor invoices matching the domain.
// A nil domain defaults to both invoice directions.
func (s *Session) SearchInvoices(ctx context.Context, domain []any, limit int) ([]Invoice, error) {
	if domain == nil {
		domain = []any{[]any{"move_type", "in", []string{"out_invoice", "in_invoice"}}}
	}
	fields := []string{"name", "partner_id", "invoice_date", "state", "amount_total", "move_type"}
	var invoices []Invoice
	if err := s.searchRead(ctx, "account.move", domain, fields, limit, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// SearchOrders returns sales orders matching the domain.
func (s *Session) SearchOrders(ctx context.Context, domain []any, limit int) ([]Order, error) {
	fields := []string{"name", "partner_id", "date_order", "state", "amount_total"}
	var orders []Order
	if err := s.searchRead(ctx, "sale.order", domain, fields, limit, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CountPartners returns the total number of partner records.
func (s *Session) CountPartners(ctx context.Context) (int, error) {
	var count int
	if err := s.ExecuteKw(ctx, "res.partner", "search_count", []any{[]any{}}, nil, &count); err != nil {
		return 0, fmt.Errorf("res.partner count failed: %w", err)
	}
	return count, nil
}
