package property

import "fmt"

// Images returns a property's images ordered by display order.
func (r *Repository) Images(propertyID int64) (images []Image, err error) {
	rows, err := r.db.Query(
		`SELECT image_id, property_id, image_url, caption, is_primary, display_order
		 FROM PropertyImages
		 WHERE property_id = ?
		 ORDER BY display_order`,
		propertyID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.PropertyID, &img.URL, &img.Caption, &img.IsPrimary, &img.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scanning image: %w", err)
		}
		images = append(images, img)
	}

	return images, rows.Err()
}

// AddImage attaches an image to a property and returns its id.
func (r *Repository) AddImage(propertyID int64, url, caption string, isPrimary bool, displayOrder int) (int64, error) {
	result, err := r.db.Exec(
		`INSERT INTO PropertyImages (property_id, image_url, caption, is_primary, display_order)
		 VALUES (?, ?, ?, ?, ?)`,
		propertyID, url, caption, isPrimary, displayOrder,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting image: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting image id: %w", err)
	}
	return id, nil
}
