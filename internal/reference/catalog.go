package reference

// Entry is one item of a fixed reference list: a stable identifier plus the
// localized display names the client renders (Dari, Pashto, English).
type Entry struct {
	ID     string `json:"id"`
	NameFA string `json:"name_fa"`
	NamePS string `json:"name_ps"`
	NameEN string `json:"name_en"`
	Icon   string `json:"icon"`
}

// Catalog holds the closed category, city and currency sets listings are
// validated against. The lists are reference data, not user data: they are
// fixed at build time and the store never writes to them.
type Catalog struct {
	categories []Entry
	cities     []Entry
	currencies []string

	categoryIDs map[string]struct{}
	cityIDs     map[string]struct{}
	currencySet map[string]struct{}
}

func NewCatalog() *Catalog {
	c := &Catalog{
		categories: defaultCategories,
		cities:     defaultCities,
		currencies: defaultCurrencies,
	}

	c.categoryIDs = make(map[string]struct{}, len(c.categories))
	for _, e := range c.categories {
		c.categoryIDs[e.ID] = struct{}{}
	}
	c.cityIDs = make(map[string]struct{}, len(c.cities))
	for _, e := range c.cities {
		c.cityIDs[e.ID] = struct{}{}
	}
	c.currencySet = make(map[string]struct{}, len(c.currencies))
	for _, cur := range c.currencies {
		c.currencySet[cur] = struct{}{}
	}

	return c
}

func (c *Catalog) Categories() []Entry {
	return c.categories
}

func (c *Catalog) Cities() []Entry {
	return c.cities
}

func (c *Catalog) Currencies() []string {
	return c.currencies
}

func (c *Catalog) IsCategory(id string) bool {
	_, ok := c.categoryIDs[id]
	return ok
}

func (c *Catalog) IsCity(id string) bool {
	_, ok := c.cityIDs[id]
	return ok
}

func (c *Catalog) IsCurrency(code string) bool {
	_, ok := c.currencySet[code]
	return ok
}

var defaultCategories = []Entry{
	{ID: "vehicles", NameFA: "وسایط نقلیه", NamePS: "موټرونه", NameEN: "Vehicles", Icon: "🚗"},
	{ID: "realestate", NameFA: "املاک", NamePS: "ملکیت", NameEN: "Real Estate", Icon: "🏠"},
	{ID: "electronics", NameFA: "الکترونیکی", NamePS: "بریښنایی", NameEN: "Electronics", Icon: "📱"},
	{ID: "jewelry", NameFA: "جواهرات", NamePS: "ګاڼې", NameEN: "Jewelry", Icon: "💍"},
	{ID: "mens-clothes", NameFA: "لباس مردانه", NamePS: "نارینه جامې", NameEN: "Men's Clothes", Icon: "👔"},
	{ID: "womens-clothes", NameFA: "لباس زنانه", NamePS: "ښځینه جامې", NameEN: "Women's Clothes", Icon: "👗"},
	{ID: "kids-clothes", NameFA: "لباس اطفال", NamePS: "ماشومانو جامې", NameEN: "Kids' Clothes", Icon: "👶"},
	{ID: "books", NameFA: "آموزش", NamePS: "زده کړه", NameEN: "Education", Icon: "📚"},
	{ID: "kids", NameFA: "لوازم کودک", NamePS: "د ماشوم سامان", NameEN: "Kids' Items", Icon: "🧸"},
	{ID: "home", NameFA: "لوازم خانگی", NamePS: "د کور سامان", NameEN: "Home Items", Icon: "🛋️"},
	{ID: "jobs", NameFA: "استخدام", NamePS: "دنده", NameEN: "Jobs", Icon: "💼"},
	{ID: "services", NameFA: "خدمات", NamePS: "خدمات", NameEN: "Services", Icon: "🛠️"},
	{ID: "games", NameFA: "سرگرمی", NamePS: "تفریح", NameEN: "Entertainment", Icon: "🎮"},
	{ID: "sports", NameFA: "ورزشی", NamePS: "ورزش", NameEN: "Sports", Icon: "⚽"},
}

var defaultCities = []Entry{
	{ID: "kabul", NameFA: "کابل", NamePS: "کابل", NameEN: "Kabul", Icon: "🏛️"},
	{ID: "herat", NameFA: "هرات", NamePS: "هرات", NameEN: "Herat", Icon: "🕌"},
	{ID: "mazar", NameFA: "مزار شریف", NamePS: "مزار شریف", NameEN: "Mazar-e-Sharif", Icon: "🏺"},
	{ID: "kandahar", NameFA: "قندهار", NamePS: "کندهار", NameEN: "Kandahar", Icon: "🏜️"},
	{ID: "jalalabad", NameFA: "جلال‌آباد", NamePS: "جلال‌آباد", NameEN: "Jalalabad", Icon: "🏔️"},
	{ID: "ghazni", NameFA: "غزنی", NamePS: "غزني", NameEN: "Ghazni", Icon: "🏰"},
	{ID: "bamyan", NameFA: "بامیان", NamePS: "بامیان", NameEN: "Bamyan", Icon: "⛰️"},
	{ID: "farah", NameFA: "فراه", NamePS: "فراه", NameEN: "Farah", Icon: "🌾"},
	{ID: "kunduz", NameFA: "کندز", NamePS: "کندز", NameEN: "Kunduz", Icon: "🌿"},
	{ID: "badakhshan", NameFA: "بدخشان", NamePS: "بدخشان", NameEN: "Badakhshan", Icon: "🏔️"},
}

var defaultCurrencies = []string{"USD", "AFN"}
