package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/internal/pkg/realtime"
)

const (
	defaultRecentLimit = 5
	unknownProduct     = "Unknown Product"
	unknownClient      = "Unknown Client"
)

// RecentSale is a sale with the display names the dashboard feed needs.
type RecentSale struct {
	models.Sale
	ProductName  string  `json:"productName"`
	ClientName   string  `json:"clientName"`
	ClientAvatar *string `json:"clientAvatar"`
}

// HandleListSales returns all sales, optionally filtered by serverId and clientId.
func (ac *APIController) HandleListSales(c *fiber.Ctx) error {
	serverID, byServer, ok := queryID(c, "serverId")
	if !ok {
		return badRequest(c, "invalid serverId")
	}
	clientID, byClient, ok := queryID(c, "clientId")
	if !ok {
		return badRequest(c, "invalid clientId")
	}

	var (
		sales []models.Sale
		err   error
	)
	switch {
	case byServer:
		sales, err = ac.repos.Sale.ListByServer(c.UserContext(), serverID)
	case byClient:
		sales, err = ac.repos.Sale.ListByClient(c.UserContext(), clientID)
	default:
		sales, err = ac.repos.Sale.List(c.UserContext())
	}
	if err != nil {
		return ac.handleError(c, "Sale", err)
	}
	if byServer && byClient {
		filtered := sales[:0]
		for _, s := range sales {
			if s.ClientID != nil && *s.ClientID == clientID {
				filtered = append(filtered, s)
			}
		}
		sales = filtered
	}
	if sales == nil {
		sales = []models.Sale{}
	}
	return c.JSON(sales)
}

// HandleRecentSales returns the newest sales enriched with product and client names.
func (ac *APIController) HandleRecentSales(c *fiber.Ctx) error {
	limit, ok := queryLimit(c, defaultRecentLimit)
	if !ok {
		return badRequest(c, "invalid limit")
	}
	ctx := c.UserContext()
	sales, err := ac.repos.Sale.Recent(ctx, limit)
	if err != nil {
		return ac.handleError(c, "Sale", err)
	}

	out := make([]RecentSale, 0, len(sales))
	for _, sale := range sales {
		entry := RecentSale{Sale: sale, ProductName: unknownProduct, ClientName: unknownClient}
		if sale.ProductID != nil {
			if product, err := ac.repos.Product.GetByID(ctx, *sale.ProductID); err == nil {
				entry.ProductName = product.Name
			}
		}
		if sale.ClientID != nil {
			if client, err := ac.repos.User.GetByID(ctx, *sale.ClientID); err == nil {
				entry.ClientName = client.Username
				entry.ClientAvatar = client.AvatarURL
			}
		}
		out = append(out, entry)
	}
	return c.JSON(out)
}

func (ac *APIController) HandleSalesStats(c *fiber.Ctx) error {
	stats, err := ac.repos.Sale.Stats(c.UserContext())
	if err != nil {
		return ac.handleError(c, "Sale", err)
	}
	return c.JSON(stats)
}

func (ac *APIController) HandleGetSale(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid sale id")
	}
	sale, err := ac.repos.Sale.GetByID(c.UserContext(), id)
	if err != nil {
		return ac.handleError(c, "Sale", err)
	}
	return c.JSON(sale)
}

// HandleCreateSale stores the sale and pushes NEW_SALE to dashboard clients.
func (ac *APIController) HandleCreateSale(c *fiber.Ctx) error {
	var in models.SaleInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	sale := in.ToSale()
	if err := ac.repos.Sale.Create(c.UserContext(), sale); err != nil {
		return ac.handleError(c, "Sale", err)
	}
	ac.invalidateStats(c.UserContext())
	ac.broadcast(realtime.EventNewSale, sale)
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// HandleUpdateSale applies a partial update and pushes UPDATED_SALE.
func (ac *APIController) HandleUpdateSale(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid sale id")
	}
	var patch models.SalePatch
	if ok, err := parseBody(c, &patch); !ok {
		return err
	}
	sale, err := ac.repos.Sale.Update(c.UserContext(), id, patch)
	if err != nil {
		return ac.handleError(c, "Sale", err)
	}
	ac.invalidateStats(c.UserContext())
	ac.broadcast(realtime.EventUpdatedSale, sale)
	return c.JSON(sale)
}
