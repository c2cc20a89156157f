package repo

import (
	"context"
	"encoding/json"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"

	"github.com/documind/documind/internal/model"
	appErr "github.com/documind/documind/internal/pkg/errors"
)

type AnalysisRepo struct {
	db *sqlx.DB
}

func NewAnalysisRepo(db *sqlx.DB) *AnalysisRepo {
	return &AnalysisRepo{db: db}
}

var analysisFields = []string{"id", "workspace_id", "document_id", "model", "result", "ctime"}

func (r *AnalysisRepo) Create(ctx context.Context, record *model.AnalysisRecord) error {
	blob, err := json.Marshal(record.Result)
	if err != nil {
		return err
	}
	data := map[string]interface{}{
		"id":           record.ID,
		"workspace_id": record.WorkspaceID,
		"document_id":  record.DocumentID,
		"model":        record.Model,
		"result":       blob,
		"ctime":        record.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("analyses", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, r.db.Rebind(sqlStr), args...)
	return err
}

func (r *AnalysisRepo) GetByID(ctx context.Context, workspaceID, id string) (*model.AnalysisRecord, error) {
	where := map[string]interface{}{
		"id":           id,
		"workspace_id": workspaceID,
	}
	sqlStr, args, err := builder.BuildSelect("analyses", where, analysisFields)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(sqlStr), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanAnalysis(rows)
}

func (r *AnalysisRepo) ListByWorkspace(ctx context.Context, workspaceID string, limit uint) ([]model.AnalysisRecord, error) {
	where := map[string]interface{}{
		"workspace_id": workspaceID,
		"_orderby":     "ctime desc",
	}
	if limit > 0 {
		where["_limit"] = []uint{0, limit}
	}
	sqlStr, args, err := builder.BuildSelect("analyses", where, analysisFields)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(sqlStr), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []model.AnalysisRecord
	for rows.Next() {
		record, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func (r *AnalysisRepo) DeleteByDocument(ctx context.Context, docID string) error {
	sqlStr, args, err := builder.BuildDelete("analyses", map[string]interface{}{"document_id": docID})
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, r.db.Rebind(sqlStr), args...)
	return err
}

func (r *AnalysisRepo) DeleteBefore(ctx context.Context, cutoff int64) (int64, error) {
	sqlStr, args, err := builder.BuildDelete("analyses", map[string]interface{}{"ctime <": cutoff})
	if err != nil {
		return 0, err
	}
	result, err := r.db.ExecContext(ctx, r.db.Rebind(sqlStr), args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(rows rowScanner) (*model.AnalysisRecord, error) {
	var record model.AnalysisRecord
	var blob []byte
	if err := rows.Scan(&record.ID, &record.WorkspaceID, &record.DocumentID, &record.Model, &blob, &record.Ctime); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(blob, &record.Result); err != nil {
		return nil, err
	}
	return &record, nil
}
