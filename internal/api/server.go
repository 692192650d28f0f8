package api

import (
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jos-ren/Sors-Finance-sub002/internal/buildinfo"
	"github.com/jos-ren/Sors-Finance-sub002/internal/categorize"
	"github.com/jos-ren/Sors-Finance-sub002/internal/cells"
	"github.com/jos-ren/Sors-Finance-sub002/internal/dedup"
	"github.com/jos-ren/Sors-Finance-sub002/internal/detect"
	"github.com/jos-ren/Sors-Finance-sub002/internal/importer"
	"github.com/jos-ren/Sors-Finance-sub002/internal/model"
)

const dateFormat = "2006-01-02"

// CategorySource provides the category set used for preview categorization.
type CategorySource interface {
	Matchable() []model.Category
	UncategorizedID() string
}

// SignatureSource provides existing ledger signatures for duplicate marking.
type SignatureSource interface {
	Signatures() ([]string, error)
}

// Server is the read-only preview API. It parses and categorizes uploads
// in memory and never writes to the workspace.
type Server struct {
	app  *fiber.App
	log  zerolog.Logger
	reg  *importer.Registry
	cats CategorySource
	sigs SignatureSource
}

// Detection is one format's verdict in JSON form.
type Detection struct {
	Bank       string `json:"bank"`
	Confidence string `json:"confidence"`
	Reason     string `json:"reason"`
}

// Transaction is the JSON shape of a previewed transaction. Amounts are
// fixed-point strings so clients never see float drift.
type Transaction struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	AmountOut   string   `json:"amountOut"`
	AmountIn    string   `json:"amountIn"`
	NetAmount   string   `json:"netAmount"`
	CategoryID  string   `json:"categoryId,omitempty"`
	Conflicts   []string `json:"conflicts,omitempty"`
	Duplicate   bool     `json:"duplicate,omitempty"`
}

// Summary is the JSON shape of preview counts.
type Summary struct {
	Total       int `json:"total"`
	Categorized int `json:"categorized"`
	Conflicts   int `json:"conflicts"`
	Unassigned  int `json:"unassigned"`
	Duplicates  int `json:"duplicates"`
}

// DetectResponse is the JSON response from POST /api/detect.
type DetectResponse struct {
	File    string      `json:"file"`
	Best    Detection   `json:"best"`
	Results []Detection `json:"results"`
}

// PreviewResponse is the JSON response from POST /api/preview.
type PreviewResponse struct {
	File         string        `json:"file"`
	Detection    Detection     `json:"detection"`
	Transactions []Transaction `json:"transactions"`
	RowErrors    []string      `json:"rowErrors,omitempty"`
	Summary      Summary       `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New builds a Server with routes registered. A nil sigs disables
// duplicate marking in previews.
func New(log zerolog.Logger, reg *importer.Registry, cats CategorySource, sigs SignatureSource) *Server {
	s := &Server{
		log:  log,
		reg:  reg,
		cats: cats,
		sigs: sigs,
	}

	app := fiber.New(fiber.Config{
		AppName:               "sors",
		DisableStartupMessage: true,
	})
	app.Use(s.logRequests)
	app.Get("/api/health", s.handleHealth)
	app.Post("/api/detect", s.handleDetect)
	app.Post("/api/preview", s.handlePreview)

	s.app = app
	return s
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves the API on addr until the listener fails.
func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Msg("preview server listening")
	return s.app.Listen(addr)
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Info().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("elapsed", time.Since(start)).
		Msg("request")
	return err
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleDetect(c *fiber.Ctx) error {
	name, data, err := formFile(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	rows, err := cells.Load(name, data)
	if err != nil {
		return unprocessable(c, err.Error())
	}

	all := detect.DetectAll(rows)
	results := make([]Detection, len(all))
	for i, r := range all {
		results[i] = toDetection(r)
	}

	return c.JSON(DetectResponse{
		File:    name,
		Best:    toDetection(detect.Detect(rows)),
		Results: results,
	})
}

func (s *Server) handlePreview(c *fiber.Ctx) error {
	name, data, err := formFile(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	rows, err := cells.Load(name, data)
	if err != nil {
		return unprocessable(c, err.Error())
	}

	detection := detect.Detect(rows)

	bank := detection.Bank
	if forced := c.FormValue("bank"); forced != "" {
		bank = model.BankType(forced)
	} else if !detection.Confidence.Detected() {
		return unprocessable(c, detection.Reason)
	}

	p := s.reg.Get(bank)
	if p == nil {
		return badRequest(c, fmt.Sprintf("no parser for bank %q", bank))
	}

	result := p.Parse(rows)
	txns := categorize.Categorize(result.Transactions, s.cats.Matchable())

	var existing dedup.Set
	if s.sigs != nil {
		sigs, err := s.sigs.Signatures()
		if err != nil {
			return internalError(c, fmt.Sprintf("reading ledger signatures: %v", err))
		}
		existing = dedup.FromSignatures(sigs)
	}

	out := make([]Transaction, len(txns))
	duplicates := 0
	for i, txn := range txns {
		dto := toTransaction(txn)
		if existing.Contains(txn) {
			dto.Duplicate = true
			duplicates++
		}
		out[i] = dto
	}

	sum := categorize.Summarize(txns, duplicates, s.cats.UncategorizedID())

	return c.JSON(PreviewResponse{
		File:         name,
		Detection:    toDetection(detection),
		Transactions: out,
		RowErrors:    result.Errors,
		Summary: Summary{
			Total:       sum.Total,
			Categorized: sum.Categorized,
			Conflicts:   sum.Conflicts,
			Unassigned:  sum.Unassigned,
			Duplicates:  sum.Duplicates,
		},
	})
}

func formFile(c *fiber.Ctx) (string, []byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("no file uploaded, use form field %q", "file")
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, fmt.Errorf("reading upload: %w", err)
	}
	return fh.Filename, data, nil
}

func toDetection(r model.DetectionResult) Detection {
	return Detection{
		Bank:       string(r.Bank),
		Confidence: string(r.Confidence),
		Reason:     r.Reason,
	}
}

func toTransaction(t model.Transaction) Transaction {
	return Transaction{
		ID:          t.ID,
		Date:        t.Date.Format(dateFormat),
		Description: t.Description,
		AmountOut:   t.AmountOut.StringFixed(2),
		AmountIn:    t.AmountIn.StringFixed(2),
		NetAmount:   t.NetAmount.StringFixed(2),
		CategoryID:  t.CategoryID,
		Conflicts:   t.ConflictingCategories,
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: msg})
}

func unprocessable(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(errorResponse{Error: msg})
}

func internalError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: msg})
}
