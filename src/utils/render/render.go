package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const (
	EngineRod         = "ROD"
	EngineWKHTMLTOPDF = "WKHTMLTOPDF"
)

// Legal paper with 10mm margins.
const (
	legalWidthInch  = 8.5
	legalHeightInch = 14.0
	marginMM        = 10.0
)

var funcs = template.FuncMap{
	"date": func(t interface{}) string {
		switch v := t.(type) {
		case time.Time:
			return v.Format("02-01-2006")
		case *time.Time:
			if v == nil {
				return "-"
			}
			return v.Format("02-01-2006")
		}
		return "-"
	},
	"inc":   func(i int) int { return i + 1 },
	"upper": strings.ToUpper,
}

// RenderHTMLWithCSS executes templatePath with data, inlining the stylesheet at
// cssPath as .CSS.
func RenderHTMLWithCSS(templatePath string, cssPath string, data interface{}) (string, error) {
	tpl, err := template.New(templateName(templatePath)).Funcs(funcs).ParseFiles(templatePath)
	if err != nil {
		return "", err
	}

	css, err := os.ReadFile(cssPath)
	if err != nil {
		return "", err
	}

	var output bytes.Buffer
	err = tpl.Execute(&output, map[string]interface{}{
		"CSS":  template.CSS(css),
		"Data": data,
	})
	if err != nil {
		return "", err
	}
	return output.String(), nil
}

func templateName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// PDFEngine turns a rendered HTML document into a Legal sized PDF.
type PDFEngine interface {
	PDF(ctx context.Context, html string) ([]byte, error)
}

// NewEngine returns the engine named by name, defaulting to the headless browser.
func NewEngine(name string, chromeBin string) PDFEngine {
	if strings.EqualFold(name, EngineWKHTMLTOPDF) {
		return &WKHTMLTOPDFEngine{}
	}
	return &RodEngine{Bin: chromeBin}
}

type RodEngine struct {
	Bin string
}

func inches(mm float64) *float64 {
	v := mm / 25.4
	return &v
}

func float(v float64) *float64 {
	return &v
}

func (e *RodEngine) PDF(ctx context.Context, html string) ([]byte, error) {
	l := launcher.New().Headless(true)
	if e.Bin != "" {
		l = l.Bin(e.Bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}
	defer l.Kill()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, err
	}
	if err := page.SetDocumentContent(html); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      float(legalWidthInch),
		PaperHeight:     float(legalHeightInch),
		MarginTop:       inches(marginMM),
		MarginBottom:    inches(marginMM),
		MarginLeft:      inches(marginMM),
		MarginRight:     inches(marginMM),
	})
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	return io.ReadAll(stream)
}

type WKHTMLTOPDFEngine struct{}

func (e *WKHTMLTOPDFEngine) PDF(_ context.Context, html string) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeLegal)
	pdfg.MarginTop.Set(uint(marginMM))
	pdfg.MarginBottom.Set(uint(marginMM))
	pdfg.MarginLeft.Set(uint(marginMM))
	pdfg.MarginRight.Set(uint(marginMM))

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return pdfg.Bytes(), nil
}
