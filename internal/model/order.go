package model

// OrderedArticle is one line of an order.
type OrderedArticle struct {
	ArticleName  string  `yaml:"article_name"   json:"articleName"`
	Quantity     int     `yaml:"quantity"       json:"quantity"`
	PricePerUnit float64 `yaml:"price_per_unit" json:"pricePerUnit"`
}

// Order is a customer order read from an email.
type Order struct {
	CustomerName    string           `yaml:"customer_name"    json:"customerName"`
	OrderedArticles []OrderedArticle `yaml:"ordered_articles" json:"orderedArticles"`
}

// ErpElementIDs maps the ERP form's fields to automation element IDs.
type ErpElementIDs struct {
	CustomerName    string `yaml:"customer_name"     json:"elementIdCustomerName"`
	ArticleName     string `yaml:"article_name"      json:"elementIdArticleName"`
	Quantity        string `yaml:"quantity"          json:"elementIdQuantity"`
	PricePerUnit    string `yaml:"price_per_unit"    json:"elementIdPricePerUnit"`
	AddItemButton   string `yaml:"add_item_button"   json:"elementIdAddItemButton"`
	SaveOrderButton string `yaml:"save_order_button" json:"elementIdSaveOrderButton"`
}

// Fields returns the IDs keyed by their wire name, in form order.
func (ids ErpElementIDs) Fields() []NamedID {
	return []NamedID{
		{"elementIdCustomerName", ids.CustomerName},
		{"elementIdArticleName", ids.ArticleName},
		{"elementIdQuantity", ids.Quantity},
		{"elementIdPricePerUnit", ids.PricePerUnit},
		{"elementIdAddItemButton", ids.AddItemButton},
		{"elementIdSaveOrderButton", ids.SaveOrderButton},
	}
}

// NamedID pairs a field name with an element ID.
type NamedID struct {
	Name string
	ID   string
}

// NewsDigest summarises a batch of timeline text.
type NewsDigest struct {
	SummaryBulletPoints              []string `yaml:"summary_bullet_points"               json:"summaryBulletPoints"`
	BreakingNewsProbabilityInPercent int      `yaml:"breaking_news_probability_in_percent" json:"breakingNewsProbabilityInPercent"`
}
