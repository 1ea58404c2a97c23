package shopify

import (
	"context"
	"errors"
)

// MetafieldTypeJSON is the metafield type used for structured values.
const MetafieldTypeJSON = "json"

const metafieldsSetMutation = `mutation MetafieldsSet($metafields: [MetafieldsSetInput!]!) {
  metafieldsSet(metafields: $metafields) {
    metafields { id namespace key type value }
    userErrors { field message code }
  }
}`

const tagsAddMutation = `mutation TagsAdd($id: ID!, $tags: [String!]!) {
  tagsAdd(id: $id, tags: $tags) {
    node { id }
    userErrors { field message }
  }
}`

// SetMetafield upserts a single metafield.
func (c *Client) SetMetafield(ctx context.Context, input MetafieldInput) (Metafield, error) {
	var data struct {
		MetafieldsSet struct {
			Metafields []Metafield `json:"metafields"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"metafieldsSet"`
	}

	vars := map[string]any{"metafields": []MetafieldInput{input}}
	if err := c.do(ctx, "MetafieldsSet", metafieldsSetMutation, vars, &data); err != nil {
		return Metafield{}, err
	}

	if err := userErrors("metafieldsSet", data.MetafieldsSet.UserErrors); err != nil {
		return Metafield{}, err
	}
	if len(data.MetafieldsSet.Metafields) == 0 {
		return Metafield{}, errors.New("shopify: metafieldsSet returned no metafields")
	}
	return data.MetafieldsSet.Metafields[0], nil
}

// AddTags adds tags to any taggable resource (customer, order).
func (c *Client) AddTags(ctx context.Context, id string, tags []string) error {
	var data struct {
		TagsAdd struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"tagsAdd"`
	}

	vars := map[string]any{"id": id, "tags": tags}
	if err := c.do(ctx, "TagsAdd", tagsAddMutation, vars, &data); err != nil {
		return err
	}
	return userErrors("tagsAdd", data.TagsAdd.UserErrors)
}
