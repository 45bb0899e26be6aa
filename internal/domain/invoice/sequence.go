package invoice

// Sequence is the per-tenant per-year invoice number counter. Incremented
// with a single conditional-update statement so concurrent scheduled runs
// and API writes cannot hand out the same number.
type Sequence struct {
	TenantID  string `json:"tenant_id" gorm:"primaryKey"`
	Year      int    `json:"year" gorm:"primaryKey"`
	LastValue int64  `json:"last_value"`
}

func (Sequence) TableName() string {
	return "invoice_sequences"
}
