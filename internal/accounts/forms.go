package accounts

type SignupForm struct {
	FirstName string `form:"first_name" sanitize:"trim" validate:"max=150"`
	LastName  string `form:"last_name" sanitize:"trim" validate:"max=150"`
	Username  string `form:"username" sanitize:"trim" validate:"required,max=150,username"`
	Email     string `form:"email" sanitize:"email" validate:"required,email,max=254"`
	Password1 string `form:"password1" validate:"required,min=8,max=72"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

type LoginForm struct {
	Username string `form:"username" sanitize:"trim" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next" sanitize:"trim"`
}
