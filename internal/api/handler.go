package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/idxpulse/brokerpulse/internal/domain/dto"
	"github.com/idxpulse/brokerpulse/internal/domain/models"
	"github.com/idxpulse/brokerpulse/internal/ingestion"
	"github.com/idxpulse/brokerpulse/internal/logger"
	"github.com/idxpulse/brokerpulse/internal/query"
	"github.com/idxpulse/brokerpulse/internal/service"
)

const dateLayout = "2006-01-02"

// Handler provides the HTTP handlers of the broker-summary API.
//
// Responsibilities:
//   - Validate incoming query parameters and uploads
//   - Call the service layer
//   - Translate results and errors into response DTOs
type Handler struct {
	svc service.BrokerService
}

// NewHandler constructs a Handler around the business service.
func NewHandler(svc service.BrokerService) *Handler {
	return &Handler{svc: svc}
}

// UploadFiles handles POST /api/v1/files.
//
// Accepts multipart form files under the "files" field, validates each
// one (date token, readability, required columns) and stores accepted
// files, overwriting same-named predecessors. After at least one accept
// the dataset is rebuilt.
//
// UploadFiles godoc
// @Summary      Upload source files
// @Description  Validates and stores daily broker-summary .xlsx files, then rebuilds the dataset
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "One or more .xlsx files named YYYYMMDD_*.xlsx"
// @Success      200    {array}   dto.UploadResult
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/v1/files [post]
func (h *Handler) UploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid multipart form", err))
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("no files provided", nil))
		return
	}

	results := make([]dto.UploadResult, 0, len(files))
	accepted := 0
	for _, fh := range files {
		res := dto.UploadResult{File: fh.Filename}

		src, err := fh.Open()
		if err != nil {
			res.Reason = string(ingestion.ReasonUnreadableFile)
			res.Detail = err.Error()
			results = append(results, res)
			continue
		}
		data, err := io.ReadAll(src)
		_ = src.Close()
		if err != nil {
			res.Reason = string(ingestion.ReasonUnreadableFile)
			res.Detail = err.Error()
			results = append(results, res)
			continue
		}

		if err := h.svc.Upload(c.Request.Context(), fh.Filename, data); err != nil {
			var re *ingestion.RejectError
			if errors.As(err, &re) {
				res.Reason = string(re.Reason)
				res.Detail = re.Detail
			} else {
				res.Reason = string(ingestion.ReasonUnreadableFile)
				res.Detail = err.Error()
			}
			results = append(results, res)
			continue
		}

		res.Accepted = true
		accepted++
		results = append(results, res)
	}

	if accepted > 0 {
		if _, err := h.svc.Refresh(c.Request.Context()); err != nil {
			logger.L().Error().Err(err).Msg("refresh after upload failed")
		}
	}

	c.JSON(http.StatusOK, results)
}

// Refresh handles POST /api/v1/refresh.
//
// Refresh godoc
// @Summary      Rebuild the dataset
// @Description  Re-reads every source file from the store and swaps in a fresh dataset snapshot
// @Tags         dataset
// @Produce      json
// @Success      200  {object}  dto.IngestReport
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	result, err := h.svc.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to rebuild dataset", err))
		return
	}
	c.JSON(http.StatusOK, toIngestReport(result))
}

// GetSummary handles GET /api/v1/summary.
//
// GetSummary godoc
// @Summary      Query broker summary
// @Description  Filtered, re-aggregated summary rows with market-share percentages
// @Tags         summary
// @Produce      json
// @Param        brokers      query  string  true   "Comma-separated broker keys"  example(YP_Mirae Asset Sekuritas,Total Market)
// @Param        fields       query  string  true   "Comma-separated fields (volume,value,frequency)"
// @Param        from         query  string  true   "Start date YYYY-MM-DD (inclusive)"
// @Param        to           query  string  true   "End date YYYY-MM-DD (inclusive)"
// @Param        granularity  query  string  false  "daily (default), monthly or yearly"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	req, err := summaryRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid summary request", err))
		return
	}

	rows, err := h.svc.Summary(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, query.ErrInvalidQuery) || errors.Is(err, query.ErrInvalidDateRange) {
			status = http.StatusBadRequest
		}
		c.JSON(status, dto.NewErrorResponse("summary query failed", err))
		return
	}

	resp := dto.SummaryResponse{Rows: make([]dto.SummaryRow, 0, len(rows)), Count: len(rows)}
	for _, r := range rows {
		resp.Rows = append(resp.Rows, dto.SummaryRow{
			Date:       req.Granularity.FormatDate(r.Date),
			Broker:     r.BrokerKey,
			Field:      r.Field.String(),
			Value:      r.Value,
			Percentage: r.Percentage,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// ExportSummary handles GET /api/v1/summary/export.
//
// ExportSummary godoc
// @Summary      Export broker summary as CSV
// @Description  Same filters as /summary, result as a downloadable CSV
// @Tags         summary
// @Produce      text/csv
// @Param        brokers      query  string  true   "Comma-separated broker keys"
// @Param        fields       query  string  true   "Comma-separated fields (volume,value,frequency)"
// @Param        from         query  string  true   "Start date YYYY-MM-DD (inclusive)"
// @Param        to           query  string  true   "End date YYYY-MM-DD (inclusive)"
// @Param        granularity  query  string  false  "daily (default), monthly or yearly"
// @Success      200  {string}  string  "CSV body"
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/summary/export [get]
func (h *Handler) ExportSummary(c *gin.Context) {
	req, err := summaryRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid summary request", err))
		return
	}

	rows, err := h.svc.Summary(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, query.ErrInvalidQuery) || errors.Is(err, query.ErrInvalidDateRange) {
			status = http.StatusBadRequest
		}
		c.JSON(status, dto.NewErrorResponse("summary query failed", err))
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="broker_summary.csv"`)
	c.Status(http.StatusOK)
	if err := query.WriteCSV(c.Writer, rows, req.Granularity); err != nil {
		logger.L().Error().Err(err).Msg("csv export write failed")
	}
}

// GetRanking handles GET /api/v1/ranking.
//
// GetRanking godoc
// @Summary      Rank brokers by one field
// @Description  Sums the field per real broker over the range, descending, with dense ranks and market share
// @Tags         ranking
// @Produce      json
// @Param        field  query  string  true  "volume, value or frequency"
// @Param        from   query  string  true  "Start date YYYY-MM-DD (inclusive)"
// @Param        to     query  string  true  "End date YYYY-MM-DD (inclusive)"
// @Success      200  {object}  dto.RankingResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/ranking [get]
func (h *Handler) GetRanking(c *gin.Context) {
	field, err := models.ParseField(c.Query("field"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid field", err))
		return
	}
	from, to, err := dateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid date range", err))
		return
	}

	rows, err := h.svc.Ranking(c.Request.Context(), field, from, to)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, query.ErrInvalidDateRange) {
			status = http.StatusBadRequest
		}
		c.JSON(status, dto.NewErrorResponse("ranking query failed", err))
		return
	}

	resp := dto.RankingResponse{Field: field.String(), Rows: make([]dto.RankingRow, 0, len(rows))}
	for _, r := range rows {
		resp.Rows = append(resp.Rows, dto.RankingRow{
			Rank:        r.Rank,
			Broker:      r.BrokerKey,
			Total:       r.Total,
			MarketShare: r.MarketShare,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// GetBrokers handles GET /api/v1/brokers.
//
// GetBrokers godoc
// @Summary      List broker keys
// @Description  Distinct broker keys in the current dataset, Total Market first
// @Tags         summary
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/v1/brokers [get]
func (h *Handler) GetBrokers(c *gin.Context) {
	keys := h.svc.Brokers(c.Request.Context())
	if keys == nil {
		keys = []string{}
	}
	c.JSON(http.StatusOK, keys)
}

// GetIngestions handles GET /api/v1/ingestions.
//
// GetIngestions godoc
// @Summary      Ingestion audit log
// @Description  Most recent per-file ingestion outcomes, newest first
// @Tags         files
// @Produce      json
// @Param        limit  query  int  false  "Max entries (default 100)"
// @Success      200  {array}   storage.IngestionEntry
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/ingestions [get]
func (h *Handler) GetIngestions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	entries, err := h.svc.Ingestions(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrNoAuditLog) {
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse("audit log unavailable", err))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to read audit log", err))
		return
	}
	c.JSON(http.StatusOK, entries)
}

// summaryRequest parses the shared filter parameters of the summary and
// export endpoints. Empty selections are passed through so the engine
// answers with its typed InvalidQuery error.
func summaryRequest(c *gin.Context) (query.Request, error) {
	var req query.Request

	req.Brokers = splitParam(c.Query("brokers"))
	for _, raw := range splitParam(c.Query("fields")) {
		f, err := models.ParseField(raw)
		if err != nil {
			return req, err
		}
		req.Fields = append(req.Fields, f)
	}

	from, to, err := dateRange(c)
	if err != nil {
		return req, err
	}
	req.From, req.To = from, to

	g, err := models.ParseGranularity(c.Query("granularity"))
	if err != nil {
		return req, err
	}
	req.Granularity = g
	return req, nil
}

func dateRange(c *gin.Context) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("from: expected YYYY-MM-DD: %w", err)
	}
	to, err := time.Parse(dateLayout, c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("to: expected YYYY-MM-DD: %w", err)
	}
	return from, to, nil
}

func splitParam(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func toIngestReport(result *ingestion.PassResult) dto.IngestReport {
	report := dto.IngestReport{
		Attempted: result.Attempted,
		Accepted:  result.Accepted(),
	}
	for _, rej := range result.Rejections {
		report.Rejected = append(report.Rejected, dto.FileRejection{
			File:   rej.File,
			Reason: string(rej.Reason),
			Detail: rej.Detail,
		})
	}
	return report
}
