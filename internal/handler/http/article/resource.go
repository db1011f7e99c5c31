// Package article serves articles as JSON resources.
//
// A single article renders as
//
//	{"type":"articles","id":"7","attribute":{"title":"Hello"}}
//
// and collections wrap the resources in a "data" member.
package article

import (
	"encoding/json"
	"fmt"
	"strconv"

	"pressroom/internal/domain/entity"
)

// ResourceType is the type member of every article resource.
const ResourceType = "articles"

// Attribute holds the public fields of an article.
type Attribute struct {
	Title string `json:"title"`
}

// Resource is the wire form of one article. ID is the decimal id as a string.
type Resource struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	Attribute Attribute `json:"attribute"`
}

// Collection is the wire form of a list of articles.
type Collection struct {
	Data []Resource `json:"data"`
}

// ToResource converts an article. It never fails and does not read any
// field other than ID and Title.
func ToResource(a entity.Article) Resource {
	return Resource{
		Type:      ResourceType,
		ID:        strconv.FormatInt(a.ID, 10),
		Attribute: Attribute{Title: a.Title},
	}
}

// Transform converts any record, rejecting everything that is not an article.
func Transform(rec entity.Record) (Resource, error) {
	switch a := rec.(type) {
	case entity.Article:
		return ToResource(a), nil
	case *entity.Article:
		if a != nil {
			return ToResource(*a), nil
		}
	}
	return Resource{}, fmt.Errorf("%w: cannot render %T as %s", entity.ErrInvalidEntityType, rec, ResourceType)
}

// ToCollection converts articles in order. An empty input yields an empty data array.
func ToCollection(articles []entity.Article) Collection {
	data := make([]Resource, 0, len(articles))
	for _, a := range articles {
		data = append(data, ToResource(a))
	}
	return Collection{Data: data}
}

// Marshal encodes the resource of a. Equal articles always encode to identical bytes.
func Marshal(a entity.Article) ([]byte, error) {
	return json.Marshal(ToResource(a))
}

func resources(articles []*entity.Article) []Resource {
	data := make([]Resource, 0, len(articles))
	for _, a := range articles {
		if a != nil {
			data = append(data, ToResource(*a))
		}
	}
	return data
}
