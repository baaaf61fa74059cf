// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cart

import (
	"fmt"
	"math"
	"strings"
)

// Product is a catalog entry offered to the cart. It is a LineItem without a
// quantity.
type Product struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
}

// LineItem is one product entry in the cart. Quantity is always >= 1 for an
// item that is present.
type LineItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func (p Product) validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidProduct)
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		return fmt.Errorf("%w: price %v for %s", ErrInvalidProduct, p.Price, p.ID)
	}
	return nil
}

func (p Product) lineItem() LineItem {
	return LineItem{
		ID:       p.ID,
		Title:    p.Title,
		ImageURL: p.ImageURL,
		Price:    p.Price,
		Quantity: 1,
	}
}
