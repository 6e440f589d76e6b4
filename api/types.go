package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-cms/backend/database"
	"github.com/inkwell-cms/backend/errs"
	"github.com/inkwell-cms/backend/models"
)

// Each endpoint has a statically chosen request/response shape; nothing is
// selected at runtime from the HTTP method.

// userResponse is the public view of a user. The password hash never
// leaves the server.
type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

func newUserResponse(u models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func newUserResponses(users []models.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}
	return out
}

type categoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
}

func newCategoryResponse(c models.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

func newCategoryResponses(categories []models.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, newCategoryResponse(c))
	}
	return out
}

type postResponse struct {
	ID         uuid.UUID          `json:"id"`
	Title      string             `json:"title"`
	Content    *string            `json:"content"`
	Status     models.PostStatus  `json:"status"`
	Author     userResponse       `json:"author"`
	Tags       []string           `json:"tags"`
	Categories []categoryResponse `json:"categories"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func newPostResponse(p models.Post) postResponse {
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, t.Name)
	}
	categories := make([]categoryResponse, 0, len(p.Categories))
	for _, link := range p.Categories {
		categories = append(categories, newCategoryResponse(link.Category))
	}
	return postResponse{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Status:     p.Status,
		Author:     newUserResponse(p.Author),
		Tags:       tags,
		Categories: categories,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func newPostResponses(posts []models.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostResponse(p))
	}
	return out
}

// postRequest is the payload for create (POST) and full replace (PUT).
// On PUT every field overwrites what is stored; omitted fields replace
// their targets with the zero value, they are not merged.
type postRequest struct {
	Title       string      `json:"title"`
	Content     *string     `json:"content"`
	Status      string      `json:"status"`
	Tags        []string    `json:"tags"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

func (p postRequest) validate() errs.ValidationErrors {
	var v errs.ValidationErrors
	if strings.TrimSpace(p.Title) == "" {
		v = v.Add("title", "title is required")
	}
	if p.Status != "" && !models.PostStatus(p.Status).Valid() {
		v = v.Add("status", "status must be DRAFT or PUBLISHED")
	}
	return v
}

// status defaults an omitted status to DRAFT.
func (p postRequest) status() models.PostStatus {
	if p.Status == "" {
		return models.StatusDraft
	}
	return models.PostStatus(p.Status)
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

func (r registerRequest) validate() errs.ValidationErrors {
	var v errs.ValidationErrors
	if strings.TrimSpace(r.Username) == "" {
		v = v.Add("username", "username is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		v = v.Add("email", "email is required")
	} else if !strings.Contains(r.Email, "@") {
		v = v.Add("email", "email is invalid")
	}
	if strings.TrimSpace(r.FirstName) == "" {
		v = v.Add("first_name", "first name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		v = v.Add("last_name", "last name is required")
	}
	if r.Password == "" {
		v = v.Add("password", "password is required")
	}
	return v
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type updateUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r updateUserRequest) validate() errs.ValidationErrors {
	var v errs.ValidationErrors
	if strings.TrimSpace(r.Username) == "" {
		v = v.Add("username", "username is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		v = v.Add("email", "email is required")
	} else if !strings.Contains(r.Email, "@") {
		v = v.Add("email", "email is invalid")
	}
	if strings.TrimSpace(r.FirstName) == "" {
		v = v.Add("first_name", "first name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		v = v.Add("last_name", "last name is required")
	}
	return v
}

type categoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (r categoryRequest) validate() errs.ValidationErrors {
	var v errs.ValidationErrors
	if strings.TrimSpace(r.Name) == "" {
		v = v.Add("name", "name is required")
	}
	return v
}

// listData is the data payload for every paginated listing.
type listData struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// pageParamsFromRequest reads the page and page_size query parameters,
// falling back to the defaults for anything unparseable.
func pageParamsFromRequest(r *http.Request) database.PageParams {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	return database.NewPageParams(page, pageSize)
}

// newListData wraps one page of results with next/previous links derived
// from the request URL, null at the boundaries.
func newListData(r *http.Request, params database.PageParams, total int64, results any) listData {
	var next, previous *string
	if params.HasNext(total) {
		next = pageLink(r.URL, params.Page+1, params.PageSize)
	}
	if params.HasPrevious() {
		previous = pageLink(r.URL, params.Page-1, params.PageSize)
	}
	return listData{Count: total, Next: next, Previous: previous, Results: results}
}

func pageLink(u *url.URL, page, pageSize int) *string {
	link := *u
	q := link.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	link.RawQuery = q.Encode()
	s := link.String()
	return &s
}
