package dummyjson

// Product is one row of the DummyJSON /products listing.
type Product struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// User is one row of the DummyJSON /users listing.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// ProductsPage is a window of the product listing.
type ProductsPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// UsersPage is a window of the user listing.
type UsersPage struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

// ListParams selects a window of a listing.
type ListParams struct {
	Limit *int
	Skip  *int
}

// errorBody is the error shape DummyJSON returns.
type errorBody struct {
	Message *string `json:"message,omitempty"`
}
