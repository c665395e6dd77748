package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/giftscout/giftscout/internal/model"
)

// SearchListings returns listings matching the present criteria fields.
// Filters are conjunctive: price ceiling, category membership, and one
// disjunction over tag substring matches for occasion, relationship, gender
// and each interest. Absent criteria fields impose no filter.
func (s *SQLiteStorage) SearchListings(ctx context.Context, criteria model.Criteria) ([]model.Listing, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var conditions []string
	var args []any

	if criteria.MaxPrice != nil {
		conditions = append(conditions, "price <= ?")
		args = append(args, *criteria.MaxPrice)
	}

	if len(criteria.Categories) > 0 {
		placeholders := strings.Repeat("?,", len(criteria.Categories))
		placeholders = placeholders[:len(placeholders)-1]
		conditions = append(conditions, fmt.Sprintf("category IN (%s)", placeholders))
		for _, category := range criteria.Categories {
			args = append(args, category)
		}
	}

	var tagTerms []string
	for _, term := range []string{criteria.Occasion, criteria.Relationship, criteria.Gender} {
		if term != "" {
			tagTerms = append(tagTerms, term)
		}
	}
	tagTerms = append(tagTerms, criteria.Interests...)

	if len(tagTerms) > 0 {
		tagConditions := make([]string, len(tagTerms))
		for i, term := range tagTerms {
			tagConditions[i] = "tags LIKE ?"
			args = append(args, "%"+term+"%")
		}
		conditions = append(conditions, "("+strings.Join(tagConditions, " OR ")+")")
	}

	query := `
		SELECT id, name, description, price, category, affiliate_link, source, tags, image_path, created_at
		FROM listings`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var listings []model.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listings: %w", err)
	}

	slog.Debug("searched listings", "count", len(listings), "filters", len(conditions))
	return listings, nil
}

// SaveListings persists the given listings, skipping any that duplicate an
// already stored listing under either dedup key: (name, source) or a
// non-empty affiliate link. Returns how many listings were inserted.
// Constraint violations from concurrent writers are treated as duplicates,
// not errors.
func (s *SQLiteStorage) SaveListings(ctx context.Context, listings []model.Listing) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	saved := 0
	for i := range listings {
		listing := &listings[i]
		if err := validateListing(listing); err != nil {
			return saved, err
		}

		duplicate, err := s.isDuplicate(ctx, listing)
		if err != nil {
			return saved, err
		}
		if duplicate {
			slog.Debug("skipping duplicate listing",
				"name", listing.Name, "source", listing.Source)
			continue
		}

		now := time.Now()
		result, err := s.db.ExecContext(ctx, `
			INSERT INTO listings (name, description, price, category, affiliate_link, source, tags, image_path, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			listing.Name,
			listing.Description,
			listing.Price,
			listing.Category,
			listing.AffiliateLink,
			listing.Source,
			model.JoinTags(listing.Tags),
			listing.ImagePath,
			now,
		)
		if err != nil {
			// A concurrent request may have inserted the same listing between
			// the dedup check and this insert; the unique indexes catch it.
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				slog.Debug("listing inserted concurrently, skipping",
					"name", listing.Name, "source", listing.Source)
				continue
			}
			return saved, fmt.Errorf("failed to insert listing %q: %w", listing.Name, err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return saved, fmt.Errorf("failed to get listing ID: %w", err)
		}
		listing.ID = id
		listing.CreatedAt = now
		saved++
	}

	slog.Info("saved new listings", "saved", saved, "offered", len(listings))
	return saved, nil
}

// isDuplicate applies both dedup keys against the stored listings.
func (s *SQLiteStorage) isDuplicate(ctx context.Context, listing *model.Listing) (bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM listings
		WHERE (name = ? AND source = ?)
		   OR (affiliate_link != '' AND affiliate_link = ?)
		LIMIT 1`,
		listing.Name, listing.Source, listing.AffiliateLink,
	).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check for duplicate listing: %w", err)
	}
	return true, nil
}

// GetListingByID returns a single listing, or nil when it does not exist.
func (s *SQLiteStorage) GetListingByID(ctx context.Context, id int64) (*model.Listing, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, category, affiliate_link, source, tags, image_path, created_at
		FROM listings
		WHERE id = ?`, id)

	listing, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// CountListings returns the total number of stored listings.
func (s *SQLiteStorage) CountListings(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return count, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanListing(row scanner) (model.Listing, error) {
	var listing model.Listing
	var description, category, affiliateLink, tags, imagePath sql.NullString

	err := row.Scan(
		&listing.ID,
		&listing.Name,
		&description,
		&listing.Price,
		&category,
		&affiliateLink,
		&listing.Source,
		&tags,
		&imagePath,
		&listing.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Listing{}, err
	}
	if err != nil {
		return model.Listing{}, fmt.Errorf("failed to scan listing: %w", err)
	}

	listing.Description = description.String
	listing.Category = category.String
	listing.AffiliateLink = affiliateLink.String
	listing.ImagePath = imagePath.String
	listing.Tags = model.SplitTags(tags.String)
	return listing, nil
}
