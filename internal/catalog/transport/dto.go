package transport

// ProductResponse is the JSON shape of a catalog product.
type ProductResponse struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Href        string `json:"href"`
	Price       string `json:"price"`
	Description string `json:"description"`
	ImageSrc    string `json:"imageSrc"`
	ImageAlt    string `json:"imageAlt"`
}
