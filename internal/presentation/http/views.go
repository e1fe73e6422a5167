package httppresentation

import (
	"time"

	"github.com/waveshop/waveshop/internal/domain/catalog"
	"github.com/waveshop/waveshop/internal/domain/order"
	"github.com/waveshop/waveshop/internal/domain/site"
	"github.com/waveshop/waveshop/internal/domain/user"
)

type cartEntryView struct {
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

func cartView(entries []user.CartEntry) []cartEntryView {
	out := make([]cartEntryView, len(entries))
	for i, e := range entries {
		out[i] = cartEntryView{ProductID: e.ProductID, Quantity: e.Quantity, AddedAt: e.AddedAt}
	}
	return out
}

type historyProductView struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	GuitarBrand string `json:"guitarBrand"`
	Quantity    int    `json:"quantity"`
}

type historyEntryView struct {
	Products   []historyProductView `json:"products"`
	TotalPrice int64                `json:"totalPrice"`
	Date       time.Time            `json:"date"`
}

func historyView(entries []user.HistoryEntry) []historyEntryView {
	out := make([]historyEntryView, len(entries))
	for i, h := range entries {
		products := make([]historyProductView, len(h.Products))
		for j, p := range h.Products {
			products[j] = historyProductView{
				ProductID:   p.ProductID,
				Name:        p.Name,
				Price:       p.Price,
				GuitarBrand: p.GuitarBrand,
				Quantity:    p.Quantity,
			}
		}
		out[i] = historyEntryView{Products: products, TotalPrice: h.TotalPrice, Date: h.Date}
	}
	return out
}

type productView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	BrandID     string    `json:"brand"`
	WoodID      string    `json:"wood"`
	Shipping    bool      `json:"shipping"`
	Quantity    int       `json:"quantity"`
	Sold        int       `json:"sold"`
	Frets       int       `json:"frets"`
	Publish     bool      `json:"publish"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newProductView(p *catalog.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		BrandID:     p.BrandID,
		WoodID:      p.WoodID,
		Shipping:    p.Shipping,
		Quantity:    p.Quantity,
		Sold:        p.Sold,
		Frets:       p.Frets,
		Publish:     p.Publish,
		Images:      p.Images,
		CreatedAt:   p.CreatedAt,
	}
}

func productsView(ps []*catalog.Product) []productView {
	out := make([]productView, len(ps))
	for i, p := range ps {
		out[i] = newProductView(p)
	}
	return out
}

type orderView struct {
	ID       string `json:"id"`
	Customer struct {
		Name     string `json:"name"`
		Lastname string `json:"lastname"`
		Email    string `json:"email"`
	} `json:"user"`
	Details struct {
		Items      []historyProductView `json:"items"`
		TotalPrice int64                `json:"totalPrice"`
		Date       time.Time            `json:"date"`
	} `json:"orderDetails"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func newOrderView(o *order.Order) orderView {
	var v orderView
	v.ID = o.ID
	v.Customer.Name = o.Customer.Name
	v.Customer.Lastname = o.Customer.Lastname
	v.Customer.Email = o.Customer.Email
	v.Details.Items = make([]historyProductView, len(o.Details.Items))
	for i, item := range o.Details.Items {
		v.Details.Items[i] = historyProductView{
			ProductID:   item.ProductID,
			Name:        item.Name,
			Price:       item.Price,
			GuitarBrand: item.GuitarBrand,
			Quantity:    item.Quantity,
		}
	}
	v.Details.TotalPrice = o.Details.TotalPrice
	v.Details.Date = o.Details.Date
	v.Status = string(o.Status)
	v.CreatedAt = o.CreatedAt
	return v
}

func ordersView(os []*order.Order) []orderView {
	out := make([]orderView, len(os))
	for i, o := range os {
		out[i] = newOrderView(o)
	}
	return out
}

type brandView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func brandsView(bs []*catalog.Brand) []brandView {
	out := make([]brandView, len(bs))
	for i, b := range bs {
		out[i] = brandView{ID: b.ID, Name: b.Name}
	}
	return out
}

type woodView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func woodsView(ws []*catalog.Wood) []woodView {
	out := make([]woodView, len(ws))
	for i, wd := range ws {
		out[i] = woodView{ID: wd.ID, Name: wd.Name}
	}
	return out
}

type siteView struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Hours   string `json:"hours"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

func newSiteView(info *site.Info) siteView {
	return siteView{ID: info.ID, Address: info.Address, Hours: info.Hours, Phone: info.Phone, Email: info.Email}
}
