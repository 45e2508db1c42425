// Package pdf genera el expediente PDF de una solicitud de propietario, para archivo
// o auditoría de la decisión.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del restaurante  │  N° Solicitud + Estado    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SOLICITANTE: nombre + email + fecha de envío                │
//	│  NEGOCIO: dirección / ciudad / referencia / horario          │
//	│  CONTACTO: persona + teléfonos                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRUEBAS Y FOTOS: una fila por documento                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  REVISIÓN: revisor + fecha + notas │ QR del enlace de mapas  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Restaurantes-api/internal/application/review"
	"github.com/jhoicas/Restaurantes-api/internal/domain/entity"
)

var _ review.ApplicationPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorApproved = &props.Color{Red: 0, Green: 120, Blue: 60}
	colorRejected = &props.Color{Red: 170, Green: 30, Blue: 30}
)

const (
	dateLayout = "02/01/2006 15:04 MST"
	emptyValue = "-"
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa review.ApplicationPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(app *entity.ApplicationWithUsers) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Solicitud de propietario #%d", app.ID), true).
		WithAuthor("Restaurantes API", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(app))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sectionRow("SOLICITANTE", []string{
		app.UserName + "  <" + app.UserEmail + ">",
		"Enviada: " + app.SubmittedAt.UTC().Format(dateLayout),
	}))
	m.AddRows(sectionRow("NEGOCIO", []string{
		fmt.Sprintf("Dirección: %s   |   Ciudad: %s", app.BusinessAddress, app.City),
		fmt.Sprintf("Referencia: %s   |   Horario: %s", nonEmpty(app.Landmark, emptyValue), nonEmpty(app.OperatingHours, emptyValue)),
	}))
	m.AddRows(sectionRow("CONTACTO", []string{
		fmt.Sprintf("%s   |   Tel: %s   |   Alterno: %s",
			app.ContactPersonName, app.ContactPhone, nonEmpty(app.AlternatePhone, emptyValue)),
	}))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(documentsHeaderRow())
	for _, r := range documentRows(app) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(reviewRow(app))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del restaurante (izq) y N° de solicitud + estado (der).
func headerRow(app *entity.ApplicationWithUsers) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(app.RestaurantName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Solicitud de verificación de propietario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("SOLICITUD N° %d", app.ID), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(app.Status, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7, Color: statusColor(app.Status),
			}),
			text.New("Declaración aceptada: "+yesNo(app.DeclarationAccepted), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// sectionRow: título y hasta dos líneas de detalle.
func sectionRow(title string, lines []string) core.Row {
	components := []core.Component{
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	}
	for i, l := range lines {
		components = append(components, text.New(l, props.Text{Size: 8, Top: float64(6 + 5*i), Color: colorGray}))
	}
	return row.New(float64(8 + 5*len(lines))).Add(col.New(12).Add(components...))
}

func documentsHeaderRow() core.Row {
	return row.New(7).Add(
		col.New(3).Add(text.New("Documento", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
		col.New(9).Add(text.New("URL", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
	)
}

// documentRows: una fila por prueba o foto; las ausentes se marcan con emptyValue.
func documentRows(app *entity.ApplicationWithUsers) []core.Row {
	docs := []struct{ label, url string }{
		{"Documento de prueba", app.ProofDocumentURL},
		{"Tarjeta de negocio", app.BusinessCardURL},
		{"Foto del propietario", app.OwnerPhotoURL},
		{"Recibo de servicios", app.UtilityBillURL},
		{"Foto de fachada", app.StorefrontPhotoURL},
		{"Foto del comedor", app.DiningPhotoURL},
	}
	rows := make([]core.Row, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(d.label, props.Text{Size: 8, Top: 1})),
			col.New(9).Add(text.New(nonEmpty(d.url, emptyValue), props.Text{Size: 7, Top: 1, Color: colorGray})),
		))
	}
	return rows
}

// reviewRow: resultado de la revisión (izq) y QR del enlace de Google Maps (der).
func reviewRow(app *entity.ApplicationWithUsers) core.Row {
	reviewer, reviewedAt := emptyValue, emptyValue
	if app.ReviewedBy != nil {
		reviewer = nonEmpty(app.ReviewedByName, emptyValue) + " <" + app.ReviewedByEmail + ">"
	}
	if app.ReviewedAt != nil {
		reviewedAt = app.ReviewedAt.UTC().Format(dateLayout)
	}

	left := col.New(8).Add(
		text.New("REVISIÓN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New("Revisor: "+reviewer, props.Text{Size: 8, Top: 7}),
		text.New("Fecha: "+reviewedAt, props.Text{Size: 8, Top: 12}),
		text.New("Notas: "+nonEmpty(app.ReviewNotes, emptyValue), props.Text{Size: 8, Top: 17, Color: colorGray}),
		text.New("Generado: "+time.Now().UTC().Format(dateLayout), props.Text{Size: 6.5, Top: 36, Color: colorGray}),
	)
	if app.GoogleMapsLink == "" {
		return row.New(40).Add(left, col.New(4))
	}
	return row.New(40).Add(
		left,
		col.New(4).Add(code.NewQr(app.GoogleMapsLink, props.Rect{Percent: 90, Center: true})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusColor(status string) *props.Color {
	switch status {
	case entity.ApplicationApproved:
		return colorApproved
	case entity.ApplicationRejected:
		return colorRejected
	}
	return colorGray
}

func yesNo(b bool) string {
	if b {
		return "sí"
	}
	return "no"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
