package models

import "strings"

// Columns is the fixed schema of the material-in-transit dataset, in the
// order rows are projected and exported.
var Columns = []string{
	"Division",
	"Po No",
	"Po Date",
	"Sales Order",
	"Invoice No",
	"Invoice Date",
	"Part Description",
	"Quantity",
	"Invoice Amount",
	"Transporter Name",
	"LR No.",
	"LR Date",
	"TAT_Po_To_Invoice",
	"TAT_Invoice_To_LR",
	"Age Bucket",
	"NDP",
}

// Shipment is one material-in-transit record, one typed field per declared
// column. Unknown spreadsheet columns are dropped at load time.
type Shipment struct {
	Division        Value `json:"Division"`
	PoNo            Value `json:"Po No"`
	PoDate          Value `json:"Po Date"`
	SalesOrder      Value `json:"Sales Order"`
	InvoiceNo       Value `json:"Invoice No"`
	InvoiceDate     Value `json:"Invoice Date"`
	PartDescription Value `json:"Part Description"`
	Quantity        Value `json:"Quantity"`
	InvoiceAmount   Value `json:"Invoice Amount"`
	TransporterName Value `json:"Transporter Name"`
	LRNo            Value `json:"LR No."`
	LRDate          Value `json:"LR Date"`
	TATPoToInvoice  Value `json:"TAT_Po_To_Invoice"`
	TATInvoiceToLR  Value `json:"TAT_Invoice_To_LR"`
	AgeBucket       Value `json:"Age Bucket"`
	NDP             Value `json:"NDP"`
}

func (s *Shipment) cells() []*Value {
	return []*Value{
		&s.Division, &s.PoNo, &s.PoDate, &s.SalesOrder,
		&s.InvoiceNo, &s.InvoiceDate, &s.PartDescription, &s.Quantity,
		&s.InvoiceAmount, &s.TransporterName, &s.LRNo, &s.LRDate,
		&s.TATPoToInvoice, &s.TATInvoiceToLR, &s.AgeBucket, &s.NDP,
	}
}

// Values returns the row's cells in schema order.
func (s Shipment) Values() []Value {
	ptrs := s.cells()
	out := make([]Value, len(ptrs))
	for i, p := range ptrs {
		out[i] = *p
	}
	return out
}

// FromCells builds a Shipment from cells in schema order. Short rows are
// padded with Blank.
func FromCells(cells []Value) Shipment {
	var s Shipment
	ptrs := s.cells()
	for i, p := range ptrs {
		if i < len(cells) {
			*p = cells[i]
		} else {
			*p = Blank
		}
	}
	return s
}

// Normalize canonicalizes every cell of the row. Idempotent.
func (s Shipment) Normalize() Shipment {
	ptrs := s.cells()
	for _, p := range ptrs {
		*p = p.Normalize()
	}
	return s
}

// LRGenerated reports whether a lorry receipt exists for the row: the
// canonical definition is a non-blank LR No. after trimming. The
// TAT_Invoice_To_LR label is display-only and never consulted.
func (s Shipment) LRGenerated() bool {
	return strings.TrimSpace(s.LRNo.String()) != ""
}
