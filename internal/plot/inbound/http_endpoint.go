package inbound

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/MangalamGSinha/goplot/internal/pkg/pkgerror"
	"github.com/MangalamGSinha/goplot/internal/pkg/pkgrouter"
	"github.com/MangalamGSinha/goplot/internal/plot/usecase"
)

const defaultMaxUploadBytes = 10 << 20

type HTTPEndpoint struct {
	uc             uc
	maxUploadBytes int64
}

// Plot accepts the dataset either as a multipart "file" part with the plot
// parameters as form fields, or as a raw CSV body with the parameters in
// the query string. The response body is the encoded image itself.
func (h *HTTPEndpoint) Plot(ctx context.Context, r *http.Request) (any, error) {
	reader, params, cleanup, err := h.extractRequest(r)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	data, err := h.readLimited(reader)
	if err != nil {
		return nil, err
	}

	artifact, err := h.uc.Plot(ctx, usecase.PlotInput{
		Data:   bytes.NewReader(data),
		Params: params,
	})
	if err != nil {
		return nil, err
	}

	return pkgrouter.Binary{ContentType: artifact.MIME, Body: artifact.Bytes}, nil
}

func (h *HTTPEndpoint) Metadata(ctx context.Context, _ *http.Request) (any, error) {
	result := h.uc.Metadata(ctx)

	return MetadataResponse{
		Name:      result.Name,
		Version:   result.Version,
		PlotTypes: result.PlotTypes,
		Formats:   result.Formats,
		Usage:     result.Usage,
	}, nil
}

func (h *HTTPEndpoint) Stats(ctx context.Context, _ *http.Request) (any, error) {
	stats, err := h.uc.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return StatsResponse{
		Total:      stats.Total,
		Failed:     stats.Failed,
		ByPlotType: stats.ByPlotType,
		ByFormat:   stats.ByFormat,
	}, nil
}

func (h *HTTPEndpoint) extractRequest(r *http.Request) (io.Reader, usecase.PlotParams, func(), error) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil && strings.EqualFold(mediaType, "multipart/form-data") {
			return h.extractMultipart(r)
		}
	}

	if r.Body == nil {
		return nil, usecase.PlotParams{}, func() {}, pkgerror.NewInvalidInput(errors.New("empty request body"))
	}

	return r.Body, paramsFromValues(r.URL.Query()), func() {}, nil
}

func (h *HTTPEndpoint) extractMultipart(r *http.Request) (io.Reader, usecase.PlotParams, func(), error) {
	if err := r.ParseMultipartForm(h.limit()); err != nil {
		return nil, usecase.PlotParams{}, func() {}, pkgerror.NewInvalidFormat()
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, usecase.PlotParams{}, func() {}, pkgerror.NewInvalidInput(errors.New("file part is required"))
	}

	params := usecase.PlotParams{
		XColumn:      r.FormValue("x_column"),
		YColumn:      r.FormValue("y_column"),
		PlotType:     r.FormValue("plot_type"),
		Title:        r.FormValue("title"),
		XLabel:       r.FormValue("xlabel"),
		YLabel:       r.FormValue("ylabel"),
		Width:        r.FormValue("width"),
		Height:       r.FormValue("height"),
		DPI:          r.FormValue("dpi"),
		Bins:         r.FormValue("bins"),
		OutputFormat: r.FormValue("output_format"),
	}

	return file, params, func() { _ = file.Close() }, nil
}

func (h *HTTPEndpoint) readLimited(r io.Reader) ([]byte, error) {
	max := h.limit()

	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, pkgerror.NewServer(err)
	}
	if int64(len(data)) > max {
		return nil, pkgerror.NewInvalidInput(fmt.Errorf("file exceeds the %d byte limit", max))
	}

	return data, nil
}

func (h *HTTPEndpoint) limit() int64 {
	if h.maxUploadBytes > 0 {
		return h.maxUploadBytes
	}
	return defaultMaxUploadBytes
}

func paramsFromValues(values url.Values) usecase.PlotParams {
	return usecase.PlotParams{
		XColumn:      values.Get("x_column"),
		YColumn:      values.Get("y_column"),
		PlotType:     values.Get("plot_type"),
		Title:        values.Get("title"),
		XLabel:       values.Get("xlabel"),
		YLabel:       values.Get("ylabel"),
		Width:        values.Get("width"),
		Height:       values.Get("height"),
		DPI:          values.Get("dpi"),
		Bins:         values.Get("bins"),
		OutputFormat: values.Get("output_format"),
	}
}
