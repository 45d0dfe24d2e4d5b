package portal

import "strings"

// MeliItem is the create payload for a Mercado Libre real-estate
// listing.
type MeliItem struct {
	Title       string          `json:"title"`
	CategoryID  string          `json:"category_id"`
	Price       float64         `json:"price"`
	CurrencyID  string          `json:"currency_id"`
	ListingType string          `json:"listing_type_id"`
	Operation   string          `json:"operation,omitempty"`
	Description *MeliText       `json:"description,omitempty"`
	Attributes  []MeliAttribute `json:"attributes"`
	Pictures    []MeliPicture   `json:"pictures"`
	Location    *MeliLocation   `json:"location,omitempty"`
}

// MeliItemUpdate is the edit payload. Immutable fields (category,
// currency, listing type) are absent, and stripping is more
// aggressive than on create: only fields being changed survive.
type MeliItemUpdate struct {
	Title      string          `json:"title,omitempty"`
	Price      float64         `json:"price,omitempty"`
	Attributes []MeliAttribute `json:"attributes,omitempty"`
	Pictures   []MeliPicture   `json:"pictures,omitempty"`
}

// MeliAttribute is one taxonomy attribute value
type MeliAttribute struct {
	ID        string `json:"id"`
	ValueName string `json:"value_name"`
}

// MeliText wraps the description body
type MeliText struct {
	PlainText string `json:"plain_text"`
}

// MeliPicture is a media entry by absolute source URL
type MeliPicture struct {
	Source string `json:"source"`
}

// MeliLocation is the nested listing location
type MeliLocation struct {
	AddressLine string  `json:"address_line,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City        string  `json:"city,omitempty"`
	State       string  `json:"state,omitempty"`
	Country     string  `json:"country,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
}

// meliItemResponse is the decoded response of item calls. The API
// reports application errors inside 2xx bodies under more than one
// key, so all of them are checked.
type meliItemResponse struct {
	ID        string `json:"id"`
	Permalink string `json:"permalink"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	Error     string `json:"error"`
	Cause     []struct {
		Code    any    `json:"code"`
		Message string `json:"message"`
	} `json:"cause"`
	Errors   []string `json:"errors"`
	Messages []string `json:"messages"`
}

// ErrorMessages collects every embedded error string
func (r *meliItemResponse) ErrorMessages() []string {
	var msgs []string
	for _, c := range r.Cause {
		if c.Message != "" {
			msgs = append(msgs, c.Message)
		}
	}
	msgs = append(msgs, r.Errors...)
	msgs = append(msgs, r.Messages...)
	if len(msgs) == 0 && r.Error != "" {
		msg := r.Error
		if r.Message != "" {
			msg += ": " + r.Message
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

// IsSuccess reports whether the body carries no embedded errors
func (r *meliItemResponse) IsSuccess() bool {
	return len(r.ErrorMessages()) == 0
}

// ErrorMessage builds a best-effort human message from the body
func (r *meliItemResponse) ErrorMessage() string {
	if msgs := r.ErrorMessages(); len(msgs) > 0 {
		return strings.Join(msgs, "; ")
	}
	return r.Message
}

// meliTokenResponse is the OAuth2 token endpoint response
type meliTokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Error        string `json:"error"`
	Message      string `json:"message"`
}

// meliUserResponse is the /users/me response; ID is the numeric user
// id that addresses update and delete calls
type meliUserResponse struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
	Error    string `json:"error"`
	Message  string `json:"message"`
}
