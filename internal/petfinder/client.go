// Package petfinder is a client for the remote pet-listing catalog. It
// normalizes the catalog's animal/organization schema into the shared
// dog/shelter shapes and translates the local filter vocabulary into the
// catalog's query parameters.
package petfinder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/sakif/dogmatch/internal/apperror"
	"github.com/sakif/dogmatch/internal/model"
	"github.com/sakif/dogmatch/internal/repository"
)

// BreedResolver maps a local breed id to the catalog's breed name. The
// catalog indexes dogs by breed name, never by the local numeric id.
type BreedResolver interface {
	Resolve(ctx context.Context, id int64) (string, error)
}

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string

	// HTTPClient is the transport used for both the token exchange and
	// API calls. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	creds   clientcredentials.Config
	base    *http.Client
	breeds  BreedResolver
	logger  *slog.Logger
}

func New(cfg Config, breeds BreedResolver, logger *slog.Logger) *Client {
	base := cfg.HTTPClient
	if base == nil {
		base = http.DefaultClient
	}
	return &Client{
		baseURL: cfg.BaseURL,
		creds: clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.BaseURL + "/oauth2/token",
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		base:   base,
		breeds: breeds,
		logger: logger,
	}
}

// httpClient returns a bearer-authenticated client. The token source is
// built fresh per call chain; nothing is cached across requests.
func (c *Client) httpClient(ctx context.Context) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base)
	return c.creds.Client(ctx)
}

// errAbsent marks a catalog 404, which is an expected outcome for
// single-record lookups, not a failure.
var errAbsent = fmt.Errorf("petfinder: record absent")

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("petfinder: building request for %s: %w", path, err)
	}

	resp, err := c.httpClient(ctx).Do(req)
	if err != nil {
		return fmt.Errorf("petfinder: calling %s: %w", path, apperror.Upstream(0, err.Error()))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return errAbsent
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn("catalog request failed", "path", path, "status", resp.StatusCode)
		return apperror.Upstream(resp.StatusCode,
			fmt.Sprintf("catalog returned %d for %s", resp.StatusCode, path))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("petfinder: decoding %s response: %w", path, err)
	}
	return nil
}

// Catalog wire shapes. Animal ids are numeric on the wire but opaque to
// us; organization ids are strings like "NY417".
type wireAnimal struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Breeds struct {
		Primary string `json:"primary"`
	} `json:"breeds"`
	Gender      string     `json:"gender"`
	Age         string     `json:"age"`
	Photos      []wireShot `json:"photos"`
	Description string     `json:"description"`
	Environment struct {
		Children *bool `json:"children"`
		Dogs     *bool `json:"dogs"`
		Cats     *bool `json:"cats"`
	} `json:"environment"`
	OrganizationID string `json:"organization_id"`
}

type wireShot struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
}

type wireOrganization struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address struct {
		Address1 string `json:"address1"`
		City     string `json:"city"`
		State    string `json:"state"`
		Postcode string `json:"postcode"`
	} `json:"address"`
	Phone            string     `json:"phone"`
	Email            string     `json:"email"`
	Photos           []wireShot `json:"photos"`
	MissionStatement string     `json:"mission_statement"`
}

func (a *wireAnimal) toDog() model.Dog {
	picture := model.DefaultDogPicture
	if len(a.Photos) > 0 && a.Photos[0].Medium != "" {
		picture = a.Photos[0].Medium
	}
	return model.Dog{
		ID:          model.RemoteID(strconv.FormatInt(a.ID, 10)),
		Name:        a.Name,
		Breed:       a.Breeds.Primary,
		Gender:      a.Gender,
		Age:         a.Age,
		Picture:     picture,
		Description: a.Description,
		GoodWKids:   model.TriFromBoolPtr(a.Environment.Children),
		GoodWDogs:   model.TriFromBoolPtr(a.Environment.Dogs),
		GoodWCats:   model.TriFromBoolPtr(a.Environment.Cats),
		ShelterID:   model.RemoteID(a.OrganizationID),
	}
}

func (o *wireOrganization) toShelter() model.Shelter {
	logo := model.DefaultShelterLogo
	if len(o.Photos) > 0 && o.Photos[0].Small != "" {
		logo = o.Photos[0].Small
	}
	return model.Shelter{
		ID:          model.RemoteID(o.ID),
		Name:        o.Name,
		Address:     o.Address.Address1,
		City:        o.Address.City,
		State:       o.Address.State,
		Postcode:    o.Address.Postcode,
		PhoneNumber: o.Phone,
		Email:       o.Email,
		Logo:        logo,
		Description: o.MissionStatement,
	}
}

// ListDogs fetches adoptable dogs matching the filter. A BreedID filter
// is resolved to the breed name first; the numeric id is never sent.
// Unknown compatibility flags are omitted from the query.
func (c *Client) ListDogs(ctx context.Context, f repository.DogFilter) ([]model.Dog, error) {
	query := url.Values{}
	query.Set("type", "dog")
	query.Set("limit", "100")
	if f.Name != "" {
		query.Set("name", f.Name)
	}
	if f.BreedID != 0 {
		name, err := c.breeds.Resolve(ctx, f.BreedID)
		if err != nil {
			return nil, fmt.Errorf("petfinder: resolving breed filter %d: %w", f.BreedID, err)
		}
		query.Set("breed", name)
	}
	if f.Gender != "" {
		query.Set("gender", f.Gender)
	}
	if f.Age != "" {
		query.Set("age", f.Age)
	}
	for _, p := range []struct {
		param string
		flag  model.TriState
	}{
		{"good_with_children", f.GoodWKids},
		{"good_with_dogs", f.GoodWDogs},
		{"good_with_cats", f.GoodWCats},
	} {
		if value, known := p.flag.Bool(); known {
			query.Set(p.param, strconv.FormatBool(value))
		}
	}

	var body struct {
		Animals []wireAnimal `json:"animals"`
	}
	if err := c.getJSON(ctx, "/animals", query, &body); err != nil {
		return nil, err
	}

	dogs := make([]model.Dog, 0, len(body.Animals))
	for i := range body.Animals {
		dogs = append(dogs, body.Animals[i].toDog())
	}
	return dogs, nil
}

// GetDog fetches one catalog dog by its remote id and hydrates the
// owning organization. A catalog 404 returns (nil, nil): absence is an
// expected outcome, not an error.
func (c *Client) GetDog(ctx context.Context, id string) (*model.Dog, error) {
	var body struct {
		Animal wireAnimal `json:"animal"`
	}
	err := c.getJSON(ctx, "/animals/"+url.PathEscape(id), nil, &body)
	if err == errAbsent {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	dog := body.Animal.toDog()
	if body.Animal.OrganizationID != "" {
		shelter, err := c.getOrganization(ctx, body.Animal.OrganizationID)
		if err != nil && err != errAbsent {
			return nil, err
		}
		dog.Shelter = shelter
	}
	return &dog, nil
}

// ListShelters fetches catalog organizations matching the filter. The
// catalog has no direct city parameter; city goes through the free-text
// query and postcode through location.
func (c *Client) ListShelters(ctx context.Context, f repository.ShelterFilter) ([]model.Shelter, error) {
	query := url.Values{}
	query.Set("limit", "50")
	if f.Name != "" {
		query.Set("name", f.Name)
	}
	if f.City != "" {
		query.Set("query", f.City)
	}
	if f.State != "" {
		query.Set("state", f.State)
	}
	if f.Postcode != "" {
		query.Set("location", f.Postcode)
	}

	var body struct {
		Organizations []wireOrganization `json:"organizations"`
	}
	if err := c.getJSON(ctx, "/organizations", query, &body); err != nil {
		return nil, err
	}

	shelters := make([]model.Shelter, 0, len(body.Organizations))
	for i := range body.Organizations {
		shelters = append(shelters, body.Organizations[i].toShelter())
	}
	return shelters, nil
}

// GetShelter fetches one catalog organization by its remote id and
// hydrates its adoptable dogs with a second call. A catalog 404 returns
// (nil, nil).
func (c *Client) GetShelter(ctx context.Context, id string) (*model.Shelter, error) {
	shelter, err := c.getOrganization(ctx, id)
	if err == errAbsent {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("organization", id)
	query.Set("type", "dog")
	var body struct {
		Animals []wireAnimal `json:"animals"`
	}
	if err := c.getJSON(ctx, "/animals", query, &body); err != nil {
		return nil, err
	}

	shelter.AdoptableDogs = make([]model.Dog, 0, len(body.Animals))
	for i := range body.Animals {
		shelter.AdoptableDogs = append(shelter.AdoptableDogs, body.Animals[i].toDog())
	}
	return shelter, nil
}

func (c *Client) getOrganization(ctx context.Context, id string) (*model.Shelter, error) {
	var body struct {
		Organization wireOrganization `json:"organization"`
	}
	if err := c.getJSON(ctx, "/organizations/"+url.PathEscape(id), nil, &body); err != nil {
		return nil, err
	}
	shelter := body.Organization.toShelter()
	return &shelter, nil
}

// ListBreeds fetches the catalog's dog-breed names, for syncing the
// local breed lookup table.
func (c *Client) ListBreeds(ctx context.Context) ([]string, error) {
	var body struct {
		Breeds []struct {
			Name string `json:"name"`
		} `json:"breeds"`
	}
	if err := c.getJSON(ctx, "/types/dog/breeds", nil, &body); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(body.Breeds))
	for _, b := range body.Breeds {
		names = append(names, b.Name)
	}
	return names, nil
}
