// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package store

import (
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/tomtom215/bovtag/internal/models"
)

// eventProjection restricts event reads to the fields the dashboard uses.
var eventProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "fazenda", Value: 1},
	{Key: "id_boi", Value: 1},
	{Key: "createdAt", Value: 1},
}

// eventDocument is the projected shape of an event document. Raw values keep
// the BSON type so decoding can tell a wrong type from a missing field.
type eventDocument struct {
	ID        bson.RawValue `bson:"_id"`
	Farm      bson.RawValue `bson:"fazenda"`
	Animal    bson.RawValue `bson:"id_boi"`
	CreatedAt bson.RawValue `bson:"createdAt"`
}

// summaryDocument is the per-farm counter document.
type summaryDocument struct {
	Farm       bson.RawValue `bson:"fazenda"`
	TotalCount bson.RawValue `bson:"total_count"`
}

// timestampLayouts are tried in order for string createdAt values.
// Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (d eventDocument) toEvent() (models.Event, error) {
	id, err := decodeID(d.ID)
	if err != nil {
		return models.Event{}, err
	}
	farm, err := optionalString("fazenda", d.Farm)
	if err != nil {
		return models.Event{}, err
	}
	animal, err := decodeSubject(d.Animal)
	if err != nil {
		return models.Event{}, err
	}
	return models.Event{
		ID:         id,
		GroupLabel: farm,
		SubjectID:  animal,
		CreatedAt:  decodeTimestamp(d.CreatedAt),
	}, nil
}

func (d summaryDocument) toSummary() (*models.TenantSummary, error) {
	farm, err := optionalString("fazenda", d.Farm)
	if err != nil {
		return nil, err
	}
	total, err := decodeCount(d.TotalCount)
	if err != nil {
		return nil, err
	}
	return &models.TenantSummary{GroupLabel: farm, TotalCount: total}, nil
}

func decodeID(v bson.RawValue) (string, error) {
	switch v.Type {
	case bson.TypeObjectID:
		return v.ObjectID().Hex(), nil
	case bson.TypeString:
		return v.StringValue(), nil
	default:
		return "", shapeError("_id", v.Type)
	}
}

// optionalString accepts a string, or nothing at all.
func optionalString(field string, v bson.RawValue) (string, error) {
	switch v.Type {
	case 0, bson.TypeNull:
		return "", nil
	case bson.TypeString:
		return v.StringValue(), nil
	default:
		return "", shapeError(field, v.Type)
	}
}

// decodeSubject accepts string or integer tags; integers are rendered in base 10.
func decodeSubject(v bson.RawValue) (string, error) {
	switch v.Type {
	case 0, bson.TypeNull:
		return "", nil
	case bson.TypeString:
		return v.StringValue(), nil
	case bson.TypeInt32:
		return strconv.FormatInt(int64(v.Int32()), 10), nil
	case bson.TypeInt64:
		return strconv.FormatInt(v.Int64(), 10), nil
	case bson.TypeDouble:
		if n, ok := int64FromDouble(v.Double()); ok {
			return strconv.FormatInt(n, 10), nil
		}
		return "", shapeError("id_boi", v.Type)
	default:
		return "", shapeError("id_boi", v.Type)
	}
}

// decodeTimestamp returns nil for anything that is not a recognizable instant.
func decodeTimestamp(v bson.RawValue) *time.Time {
	switch v.Type {
	case bson.TypeDateTime:
		t := v.Time().UTC()
		return &t
	case bson.TypeString:
		return parseTimestamp(v.StringValue())
	default:
		return nil
	}
}

func parseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func decodeCount(v bson.RawValue) (int64, error) {
	switch v.Type {
	case 0, bson.TypeNull:
		return 0, nil
	case bson.TypeInt32:
		return int64(v.Int32()), nil
	case bson.TypeInt64:
		return v.Int64(), nil
	case bson.TypeDouble:
		if n, ok := int64FromDouble(math.Trunc(v.Double())); ok {
			return n, nil
		}
		return 0, shapeError("total_count", v.Type)
	default:
		return 0, shapeError("total_count", v.Type)
	}
}

// int64FromDouble converts an integral, finite double inside the int64 range.
// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
func int64FromDouble(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
