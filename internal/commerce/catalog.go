// internal/commerce/catalog.go
package commerce

import (
	"context"
)

// ProductFilter narrows a catalog listing
type ProductFilter struct {
	Search     string   `json:"search,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// ProductOrder sorts a catalog listing
type ProductOrder struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

type productEdge struct {
	Node Product `json:"node"`
}

// Products fetches one page of the catalog for a channel
func (c *Client) Products(ctx context.Context, channel string, first int, after string, filter *ProductFilter, sortBy *ProductOrder) (*ProductPage, error) {
	vars := map[string]any{"first": first, "channel": channel}
	if after != "" {
		vars["after"] = after
	}
	if filter != nil {
		vars["filter"] = filter
	}
	if sortBy != nil {
		vars["sortBy"] = sortBy
	}

	var data struct {
		Products *struct {
			PageInfo PageInfo      `json:"pageInfo"`
			Edges    []productEdge `json:"edges"`
		} `json:"products"`
	}
	if err := c.execute(ctx, "products", productsOp, vars, &data); err != nil {
		return nil, err
	}
	page := &ProductPage{}
	if data.Products != nil {
		page.PageInfo = data.Products.PageInfo
		for _, edge := range data.Products.Edges {
			page.Products = append(page.Products, edge.Node)
		}
	}
	return page, nil
}

// ProductBySlug fetches a single product projection
func (c *Client) ProductBySlug(ctx context.Context, channel, slug string) (*Product, error) {
	var data struct {
		Product *Product `json:"product"`
	}
	vars := map[string]any{"slug": slug, "channel": channel}
	if err := c.execute(ctx, "product", productBySlugOp, vars, &data); err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, &RequestError{Operation: "product", Message: "Product not found", Code: "NOT_FOUND"}
	}
	return data.Product, nil
}

// Categories fetches the category listing with per-channel product counts
func (c *Client) Categories(ctx context.Context, channel string, first int) ([]Category, error) {
	var data struct {
		Categories *struct {
			Edges []struct {
				Node struct {
					ID       string `json:"id"`
					Name     string `json:"name"`
					Slug     string `json:"slug"`
					Products *struct {
						TotalCount int `json:"totalCount"`
					} `json:"products"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"categories"`
	}
	vars := map[string]any{"first": first, "channel": channel}
	if err := c.execute(ctx, "categories", categoriesOp, vars, &data); err != nil {
		return nil, err
	}
	var categories []Category
	if data.Categories != nil {
		for _, edge := range data.Categories.Edges {
			category := Category{
				ID:   edge.Node.ID,
				Name: edge.Node.Name,
				Slug: edge.Node.Slug,
			}
			if edge.Node.Products != nil {
				category.ProductCount = edge.Node.Products.TotalCount
			}
			categories = append(categories, category)
		}
	}
	return categories, nil
}
