package models

import "encoding/json"

// MediaFile is the normalized media descriptor attached to products and
// blogs. Older API payloads encode it as a JSON string inside the entity;
// UnmarshalJSON accepts both forms so normalization happens exactly once,
// at ingestion.
type MediaFile struct {
	Filename string `json:"filename"`
	ImageURL string `json:"imageUrl"`
}

func (m *MediaFile) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		if encoded == "" {
			return nil
		}
		data = []byte(encoded)
	}

	type mediaFile MediaFile
	var decoded mediaFile
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*m = MediaFile(decoded)
	return nil
}

type Sustainability struct {
	ShortDescription     string   `json:"shortDescription,omitempty"`
	Certifications       []string `json:"certifications,omitempty"`
	Keywords             []string `json:"keywords,omitempty"`
	CarbonFootprintScore float64  `json:"carbonFootprintScore,omitempty"`
}

type Product struct {
	ID                 int64           `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description,omitempty"`
	Category           string          `json:"category,omitempty"`
	Price              float64         `json:"price"`
	DiscountPercentage float64         `json:"discountPercentage,omitempty"`
	Rating             float64         `json:"rating,omitempty"`
	Stock              int             `json:"stock,omitempty"`
	Brand              string          `json:"brand,omitempty"`
	Thumbnail          string          `json:"thumbnail,omitempty"`
	Images             []string        `json:"images,omitempty"`
	Sustainability     *Sustainability `json:"sustainability,omitempty"`
	ImageFile          *MediaFile      `json:"imageFile,omitempty"`
}

type Blog struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	ImageFile     *MediaFile `json:"imageFile,omitempty"`
	PublishedDate string     `json:"publishedDate,omitempty"`
	UpdatedDate   string     `json:"updatedDate,omitempty"`
	Content       string     `json:"content"`
	AuthorID      string     `json:"authorId,omitempty"`
}

// CartItem is one line of the cart aggregate. Total is computed by the
// remote cart service; the client never recalculates it.
type CartItem struct {
	ProductID            int64   `json:"productId"`
	Title                string  `json:"title"`
	Price                float64 `json:"price"`
	Quantity             int     `json:"quantity"`
	Total                float64 `json:"total"`
	Thumbnail            string  `json:"thumbnail,omitempty"`
	CarbonFootprintScore float64 `json:"carbonFootprintScore,omitempty"`
}

// Cart is the server-authoritative aggregate. TotalQuantity and TotalPrice
// are recomputed by the remote service on every mutation and adopted here
// wholesale.
type Cart struct {
	ID            string     `json:"id,omitempty"`
	UserID        string     `json:"userId"`
	Items         []CartItem `json:"items"`
	TotalQuantity int        `json:"totalQuantity"`
	TotalPrice    float64    `json:"totalPrice"`
}

// FindItem returns the line for productID, or nil if the cart has none.
func (c *Cart) FindItem(productID int64) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}
