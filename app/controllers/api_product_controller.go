package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/VendaBot/app/models"
)

// HandleListProducts returns all products, filtered by serverId when given.
func (ac *APIController) HandleListProducts(c *fiber.Ctx) error {
	serverID, set, ok := queryID(c, "serverId")
	if !ok {
		return badRequest(c, "invalid serverId")
	}
	var (
		products []models.Product
		err      error
	)
	if set {
		products, err = ac.repos.Product.ListByServer(c.UserContext(), serverID)
	} else {
		products, err = ac.repos.Product.List(c.UserContext())
	}
	if err != nil {
		return ac.handleError(c, "Product", err)
	}
	return c.JSON(products)
}

func (ac *APIController) HandleGetProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid product id")
	}
	product, err := ac.repos.Product.GetByID(c.UserContext(), id)
	if err != nil {
		return ac.handleError(c, "Product", err)
	}
	return c.JSON(product)
}

func (ac *APIController) HandleCreateProduct(c *fiber.Ctx) error {
	var in models.ProductInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	product := in.ToProduct()
	if err := ac.repos.Product.Create(c.UserContext(), product); err != nil {
		return ac.handleError(c, "Product", err)
	}
	ac.invalidateStats(c.UserContext())
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (ac *APIController) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid product id")
	}
	var patch models.ProductPatch
	if ok, err := parseBody(c, &patch); !ok {
		return err
	}
	product, err := ac.repos.Product.Update(c.UserContext(), id, patch)
	if err != nil {
		return ac.handleError(c, "Product", err)
	}
	ac.invalidateStats(c.UserContext())
	return c.JSON(product)
}
