package render

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/MangalamGSinha/goplot/internal/pkg/pkgerror"
	"github.com/MangalamGSinha/goplot/internal/plot/entity"
	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"
)

const jpegQuality = 90

// Encode serializes the figure into the requested output format. The raster
// formats and the pdf all start from the png surface; svg gets its own
// vector surface.
func Encode(fig Figure, spec entity.PlotSpec) (entity.Artifact, error) {
	var buf bytes.Buffer
	var err error

	switch spec.Format {
	case entity.FormatPNG:
		err = fig.Render(chart.PNG, &buf)
	case entity.FormatSVG:
		err = fig.Render(chart.SVG, &buf)
	case entity.FormatJPG:
		err = encodeJPEG(fig, &buf)
	case entity.FormatPDF:
		err = encodePDF(fig, spec, &buf)
	default:
		return entity.Artifact{}, pkgerror.NewUnsupportedFormat(fmt.Sprintf("unsupported output format: %s", spec.Format))
	}

	if err != nil {
		return entity.Artifact{}, pkgerror.NewRenderFailed(string(spec.Type), spec.XColumn, err)
	}

	return entity.Artifact{Bytes: buf.Bytes(), MIME: spec.Format.MIME()}, nil
}

func encodeJPEG(fig Figure, w io.Writer) error {
	var raster bytes.Buffer
	if err := fig.Render(chart.PNG, &raster); err != nil {
		return err
	}

	img, err := png.Decode(&raster)
	if err != nil {
		return err
	}

	return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
}

// encodePDF embeds the rendered png into a single-page document sized to
// the figure's physical dimensions (72 points per inch).
func encodePDF(fig Figure, spec entity.PlotSpec, w io.Writer) error {
	var raster bytes.Buffer
	if err := fig.Render(chart.PNG, &raster); err != nil {
		return err
	}

	wd := spec.Width * 72
	ht := spec.Height * 72

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("figure", opts, &raster)
	pdf.ImageOptions("figure", 0, 0, wd, ht, false, opts, 0, "")

	return pdf.Output(w)
}
