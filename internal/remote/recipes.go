package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/recipeway/recipeway/internal/recipe"
)

type createRecipeRequest struct {
	Owner string `json:"owner"`
	Text  string `json:"text"`
}

type updateRecipeRequest struct {
	UserName string        `json:"userName"`
	Recipe   recipe.Record `json:"recipe"`
}

// ListRecipes returns the authoritative recipe set for viewer. The service
// resolves the viewer's visible owners from the consent edges and may merge
// several owners' recipes into the one list.
func (c *Client) ListRecipes(ctx context.Context, viewer string) ([]recipe.Record, error) {
	var records []recipe.Record
	err := c.do(ctx, http.MethodGet, "/api/recipes/"+url.PathEscape(viewer), nil, &records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CreateRecipe submits raw recipe text for extraction and returns the
// structured record the service produced.
func (c *Client) CreateRecipe(ctx context.Context, owner, text string) (*recipe.Record, error) {
	var rec recipe.Record
	err := c.do(ctx, http.MethodPost, "/api/recipes", createRecipeRequest{Owner: owner, Text: text}, &rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateRecipe pushes an edited record and returns the stored version.
func (c *Client) UpdateRecipe(ctx context.Context, owner string, rec recipe.Record) (*recipe.Record, error) {
	var out recipe.Record
	err := c.do(ctx, http.MethodPost, "/api/updateRecipe", updateRecipeRequest{UserName: owner, Recipe: rec}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRecipe removes a recipe by id.
func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/recipes/"+url.PathEscape(id), nil, nil)
}
