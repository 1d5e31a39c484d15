package usecases

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"contract-hub.backend/internal/domain/entities"
	"contract-hub.backend/internal/domain/errors"
	domainRepos "contract-hub.backend/internal/domain/repositories"
	"contract-hub.backend/pkg/logger"
)

// DocumentUsecase renders contracts into downloadable artifacts. The PDF
// output is a mock: a structurally valid single-page document carrying the
// text, not a typeset rendering.
type DocumentUsecase struct {
	contractRepo domainRepos.ContractRepository
	versionRepo  domainRepos.ContractVersionRepository
	activityRepo domainRepos.ActivityLogRepository
}

func NewDocumentUsecase(
	contractRepo domainRepos.ContractRepository,
	versionRepo domainRepos.ContractVersionRepository,
	activityRepo domainRepos.ActivityLogRepository,
) *DocumentUsecase {
	return &DocumentUsecase{
		contractRepo: contractRepo,
		versionRepo:  versionRepo,
		activityRepo: activityRepo,
	}
}

func (uc *DocumentUsecase) loadOwned(ctx context.Context, id uuid.UUID, actor entities.CurrentUser) (*entities.Contract, error) {
	contract, err := uc.contractRepo.GetByID(ctx, id, false)
	if err != nil {
		return nil, errors.NotFound("contract not found")
	}
	if contract.OwnerUserID != actor.ID {
		return nil, errors.Forbidden("you do not have access to this contract")
	}
	return contract, nil
}

// RenderPDF returns the contract's latest content as mock PDF bytes plus a
// download filename.
func (uc *DocumentUsecase) RenderPDF(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) ([]byte, string, error) {
	contract, err := uc.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, "", err
	}

	content := "(no content yet)"
	if latest, err := uc.versionRepo.GetLatest(ctx, id); err == nil {
		content = latest.Content
	}

	return mockPDF(contract.Title, content), safeFilename(contract.Title) + ".pdf", nil
}

// BulkDownload zips the selected contracts as HTML files. Contracts the
// actor cannot access are skipped, not fatal.
func (uc *DocumentUsecase) BulkDownload(ctx context.Context, actor entities.CurrentUser, ids []uuid.UUID) ([]byte, error) {
	if len(ids) == 0 {
		return nil, errors.Validation("no contracts selected")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	included := 0
	for _, id := range ids {
		contract, err := uc.loadOwned(ctx, id, actor)
		if err != nil {
			logger.Debug(ctx, "bulk download: skipping contract",
				zap.String("contract_id", id.String()), zap.Error(err))
			continue
		}

		content := ""
		if latest, err := uc.versionRepo.GetLatest(ctx, id); err == nil {
			content = latest.Content
		}

		w, err := zw.Create(safeFilename(contract.Title) + ".html")
		if err != nil {
			return nil, errors.InternalError(err)
		}
		if _, err := w.Write([]byte(contractHTML(contract.Title, content))); err != nil {
			return nil, errors.InternalError(err)
		}
		included++
	}

	if err := zw.Close(); err != nil {
		return nil, errors.InternalError(err)
	}
	if included == 0 {
		return nil, errors.NotFound("none of the selected contracts are accessible")
	}
	return buf.Bytes(), nil
}

// ExportHistory renders the activity trail as mock PDF bytes.
func (uc *DocumentUsecase) ExportHistory(ctx context.Context, actor entities.CurrentUser, id uuid.UUID) ([]byte, string, error) {
	contract, err := uc.loadOwned(ctx, id, actor)
	if err != nil {
		return nil, "", err
	}

	logs, err := uc.activityRepo.GetAll(ctx, id)
	if err != nil {
		return nil, "", errors.InternalError(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Activity history for %q\n\n", contract.Title)
	for _, entry := range logs {
		fmt.Fprintf(&b, "%s  %-10s %s\n",
			entry.Timestamp.UTC().Format("2006-01-02 15:04:05"),
			entry.Action, entry.UserName)
	}

	return mockPDF("Activity history: "+contract.Title, b.String()), safeFilename(contract.Title) + "-history.pdf", nil
}

func contractHTML(title, content string) string {
	return "<!DOCTYPE html>\n<html><head><title>" + html.EscapeString(title) +
		"</title></head><body><h1>" + html.EscapeString(title) +
		"</h1><pre>" + html.EscapeString(content) + "</pre></body></html>\n"
}

// mockPDF emits a minimal valid PDF wrapping the text in a single stream.
func mockPDF(title, content string) []byte {
	stream := "BT /F1 12 Tf 50 750 Td (" + pdfEscape(title) + ") Tj ET\n"
	for i, line := range strings.Split(content, "\n") {
		y := 720 - i*14
		if y < 40 {
			break
		}
		stream += fmt.Sprintf("BT /F1 10 Tf 50 %d Td (%s) Tj ET\n", y, pdfEscape(line))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	buf.WriteString("1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj\n")
	buf.WriteString("2 0 obj << /Type /Pages /Kids [3 0 R] /Count 1 >> endobj\n")
	buf.WriteString("3 0 obj << /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >> endobj\n")
	fmt.Fprintf(&buf, "4 0 obj << /Length %d >> stream\n%s\nendstream endobj\n", len(stream), stream)
	buf.WriteString("5 0 obj << /Type /Font /Subtype /Type1 /BaseFont /Helvetica >> endobj\n")
	buf.WriteString("trailer << /Root 1 0 R >>\n%%EOF\n")
	return buf.Bytes()
}

func pdfEscape(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return r.Replace(s)
}

func safeFilename(title string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, title)
	mapped = strings.Trim(mapped, "-")
	if mapped == "" {
		return "contract"
	}
	return strings.ToLower(mapped)
}
