package shopify

// ProductCreateRequest is the body for POST products.json.
type ProductCreateRequest struct {
	Product ProductInput `json:"product"`
}

// ProductInput defines the hidden product wrapping a customer image.
type ProductInput struct {
	Title     string         `json:"title"`
	BodyHTML  string         `json:"body_html,omitempty"`
	Status    string         `json:"status,omitempty"` // "draft" keeps the product off the storefront
	Published bool           `json:"published"`
	Tags      string         `json:"tags,omitempty"`
	Images    []ImageInput   `json:"images,omitempty"`
	Variants  []VariantInput `json:"variants,omitempty"`
}

// ImageInput carries either raw base64 bytes (attachment) or a hosted URL (src).
type ImageInput struct {
	Attachment string `json:"attachment,omitempty"`
	Src        string `json:"src,omitempty"`
}

type VariantInput struct {
	Price string `json:"price"`
	SKU   string `json:"sku"`
}

// ProductResponse is the body of a products.json create/get response.
type ProductResponse struct {
	Product *Product `json:"product"`
}

type Product struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Status   string    `json:"status"`
	Variants []Variant `json:"variants"`
	Images   []Image   `json:"images"`
}

type Variant struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	SKU       string `json:"sku"`
	Price     string `json:"price"`
}

type Image struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
}

// VariantResponse is the body of a variants/{id}.json response.
type VariantResponse struct {
	Variant *Variant `json:"variant"`
}
