package dto

// ExportRequest query de GET /api/exports/:dataset.
type ExportRequest struct {
	Format string `query:"format"` // csv (defecto), xlsx, pdf
	From   string `query:"from"`   // YYYY-MM-DD, para time_entries/invoices
	To     string `query:"to"`
	Period string `query:"period"` // YYYY-MM, para budget
}

// ExportFile archivo generado listo para descargar.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
