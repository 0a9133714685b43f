// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-digi-lib/internal/logger"
	"github.com/MKhiriev/go-digi-lib/models"
)

type libraryRepository struct {
	*DB
	logger *logger.Logger
}

func NewLibraryRepository(db *DB, logger *logger.Logger) LibraryRepository {
	return &libraryRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *libraryRepository) GetRecord(ctx context.Context, entityID string) (models.LibraryRecord, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getLibraryRecord, entityID)

	record, err := scanLibraryRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LibraryRecord{}, ErrRecordNotFound
		}
		log.Err(err).
			Str("func", "libraryRepository.GetRecord").
			Str("entity_id", entityID).
			Msg("failed to scan library record row")
		return models.LibraryRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

func (r *libraryRepository) UpsertRecord(ctx context.Context, record models.LibraryRecord) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, upsertLibraryRecord,
		record.EntityID,
		record.Class,
		record.Version,
		record.Hash,
		record.Deleted,
		record.Dirty,
		record.Payload,
		record.UpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "libraryRepository.UpsertRecord").
			Str("entity_id", record.EntityID).
			Msg("failed to upsert library record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *libraryRepository) RecordsByClass(ctx context.Context, class models.EntityClass) ([]models.LibraryRecord, error) {
	return r.queryRecords(ctx, "libraryRepository.RecordsByClass", getLibraryRecordsByClass, class)
}

func (r *libraryRepository) DirtyRecords(ctx context.Context) ([]models.LibraryRecord, error) {
	return r.queryRecords(ctx, "libraryRepository.DirtyRecords", getDirtyLibraryRecords)
}

func (r *libraryRepository) MarkClean(ctx context.Context, entityID string, version int64) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, markLibraryRecordClean, version, entityID)
	if err != nil {
		log.Err(err).
			Str("func", "libraryRepository.MarkClean").
			Str("entity_id", entityID).
			Msg("failed to mark library record clean")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (r *libraryRepository) queryRecords(ctx context.Context, funcName, query string, args ...any) ([]models.LibraryRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Msg("failed to execute library records query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.LibraryRecord
	for rows.Next() {
		record, err := scanLibraryRecord(rows)
		if err != nil {
			log.Err(err).
				Str("func", funcName).
				Msg("failed to scan library record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func scanLibraryRecord(row rowScanner) (models.LibraryRecord, error) {
	var record models.LibraryRecord
	err := row.Scan(
		&record.EntityID,
		&record.Class,
		&record.Version,
		&record.Hash,
		&record.Deleted,
		&record.Dirty,
		&record.Payload,
		&record.UpdatedAt,
	)
	return record, err
}
