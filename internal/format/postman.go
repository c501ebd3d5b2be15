package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.followtheprocess.codes/reqconv/internal/spec"
)

// Defaults for a postman URL object missing the corresponding part.
const (
	defaultProtocol = "https"
	defaultHost     = "localhost"
)

// PostmanImporter is an [Importer] that flattens a Postman v2 collection into
// its requests.
type PostmanImporter struct{}

// Import implements [Importer] for [PostmanImporter].
func (p PostmanImporter) Import(src string) ([]spec.Request, error) {
	return ParseCollection([]byte(src))
}

// ParseCollection parses a Postman v2.0 or v2.1 collection, returning every request
// in it in document order, folders are descended into depth first and then forgotten.
//
// A collection with no items gives an empty (nil) slice and no error. Only the parts
// of the collection that describe a request are looked at, everything else is ignored.
func ParseCollection(src []byte) ([]spec.Request, error) {
	var collection postmanCollection
	if err := json.Unmarshal(src, &collection); err != nil {
		return nil, fmt.Errorf("could not decode postman collection: %w", err)
	}

	var requests []spec.Request

	flatten(collection.Items, &requests)

	return requests, nil
}

// flatten walks items in pre-order, appending each leaf's request.
func flatten(items []collectionItem, requests *[]spec.Request) {
	for _, item := range items {
		switch item := item.(type) {
		case folder:
			flatten(item.children, requests)
		case leaf:
			*requests = append(*requests, item.request.toRequest())
		}
	}
}

// postmanCollection is the top level of a collection file.
type postmanCollection struct {
	Items itemList `json:"item"`
}

// collectionItem is a node in the collection tree, either a [folder] or a [leaf].
type collectionItem interface {
	collectionItem()
}

// folder is a collection item grouping other items, any request it has is ignored.
type folder struct {
	children []collectionItem
}

func (folder) collectionItem() {}

// leaf is a collection item holding a single request.
type leaf struct {
	request postmanRequest
}

func (leaf) collectionItem() {}

// itemList is a list of collection items, decoded into the right kind of node.
type itemList []collectionItem

// UnmarshalJSON implements [json.Unmarshaler] for [itemList].
//
// An item with an "item" list (even an empty one) is a folder, one with a "request"
// is a leaf and one with neither is dropped.
func (l *itemList) UnmarshalJSON(data []byte) error {
	var raw []struct {
		Items   *itemList       `json:"item"`
		Request *postmanRequest `json:"request"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	items := make(itemList, 0, len(raw))

	for _, item := range raw {
		switch {
		case item.Items != nil:
			items = append(items, folder{children: *item.Items})
		case item.Request != nil:
			items = append(items, leaf{request: *item.Request})
		}
	}

	*l = items

	return nil
}

// postmanRequest is the request part of a leaf item.
type postmanRequest struct {
	Auth   *postmanAuth    `json:"auth"`
	Body   *postmanBody    `json:"body"`
	URL    postmanURL      `json:"url"`
	Method string          `json:"method"`
	Header []postmanHeader `json:"header"`
}

// UnmarshalJSON implements [json.Unmarshaler] for [postmanRequest], a request
// may be given as just a URL string in which case it's a GET.
func (r *postmanRequest) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		*r = postmanRequest{URL: postmanURL{Raw: url}}
		return nil
	}

	type plain postmanRequest // Same fields, none of the methods, stops infinite recursion

	var request plain
	if err := json.Unmarshal(data, &request); err != nil {
		return err
	}

	*r = postmanRequest(request)

	return nil
}

// toRequest converts the postman request into a [spec.Request].
func (r postmanRequest) toRequest() spec.Request {
	request := spec.NewRequest()
	request.URL = r.URL.String()

	if method := strings.ToUpper(strings.TrimSpace(r.Method)); method != "" {
		request.Method = method
	}

	for _, header := range r.Header {
		request.SetHeader(header.Key, header.Value)
	}

	if r.Body != nil {
		request.Body = r.Body.String()
	}

	if r.Auth != nil {
		request.Auth = r.Auth.credentials()
	}

	return request
}

type postmanHeader struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// postmanURL is a request URL, either a plain string or an object with
// the URL broken into its parts.
type postmanURL struct {
	Raw      string        `json:"raw"`
	Protocol string        `json:"protocol"`
	Port     string        `json:"port"`
	Host     stringOrSlice `json:"host"`
	Path     stringOrSlice `json:"path"`
}

// UnmarshalJSON implements [json.Unmarshaler] for [postmanURL].
func (u *postmanURL) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*u = postmanURL{Raw: raw}
		return nil
	}

	type plain postmanURL

	var url plain
	if err := json.Unmarshal(data, &url); err != nil {
		return err
	}

	*u = postmanURL(url)

	return nil
}

// String implements [fmt.Stringer] for [postmanURL], preferring the raw
// form and otherwise putting the URL back together from its parts.
func (u postmanURL) String() string {
	if u.Raw != "" {
		return u.Raw
	}

	protocol := first(strings.TrimSuffix(u.Protocol, "://"), defaultProtocol)
	host := first(strings.Join(u.Host, "."), defaultHost)

	if u.Port != "" {
		host += ":" + u.Port
	}

	return protocol + "://" + host + "/" + strings.TrimPrefix(strings.Join(u.Path, "/"), "/")
}

// postmanBody is the body of a request, only the raw and urlencoded modes
// are understood.
type postmanBody struct {
	Mode       string          `json:"mode"`
	Raw        string          `json:"raw"`
	URLEncoded []postmanHeader `json:"urlencoded"`
}

// String implements [fmt.Stringer] for [postmanBody], returning the body
// as it would be sent.
func (b postmanBody) String() string {
	switch b.Mode {
	case "raw":
		return b.Raw
	case "urlencoded":
		pairs := make([]string, 0, len(b.URLEncoded))
		for _, pair := range b.URLEncoded {
			pairs = append(pairs, pair.Key+"="+pair.Value)
		}

		return strings.Join(pairs, "&")
	default:
		return ""
	}
}

// postmanAuth is the auth section of a request.
type postmanAuth struct {
	Type  string          `json:"type"`
	Basic json.RawMessage `json:"basic"`
}

// credentials returns the basic auth credentials, nil for any other type of auth
// or if there are none.
//
// v2.1 collections give basic auth as a list of key value pairs, v2.0 as an
// object, both are accepted.
func (a postmanAuth) credentials() *spec.Auth {
	if !strings.EqualFold(a.Type, "basic") || len(a.Basic) == 0 {
		return nil
	}

	var list []struct {
		Key   string `json:"key"`
		Value any    `json:"value"`
	}

	if err := json.Unmarshal(a.Basic, &list); err == nil {
		auth := &spec.Auth{}

		for _, param := range list {
			switch param.Key {
			case "username":
				auth.User = scalar(param.Value)
			case "password":
				auth.Pass = scalar(param.Value)
			}
		}

		return auth
	}

	var object struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.Unmarshal(a.Basic, &object); err != nil {
		return nil
	}

	return &spec.Auth{User: object.Username, Pass: object.Password}
}

// scalar renders a decoded JSON scalar as a string, postman lets some values
// be numbers or booleans as well as strings.
func scalar(value any) string {
	switch value := value.(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}

// stringOrSlice is a list of strings that may be given in JSON as a single string
// or a list. In a list, v2.1 style path variable objects contribute their value.
type stringOrSlice []string

// UnmarshalJSON implements [json.Unmarshaler] for [stringOrSlice].
func (s *stringOrSlice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = stringOrSlice{single}
		return nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return errors.New("must be a string or a list")
	}

	out := make(stringOrSlice, 0, len(elements))

	for _, element := range elements {
		var segment string
		if err := json.Unmarshal(element, &segment); err == nil {
			out = append(out, segment)
			continue
		}

		var variable struct {
			Value string `json:"value"`
		}

		if err := json.Unmarshal(element, &variable); err != nil {
			return fmt.Errorf("invalid segment %s: %w", element, err)
		}

		out = append(out, variable.Value)
	}

	*s = out

	return nil
}

