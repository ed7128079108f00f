package webpath

const (
	Home   = "/"
	Login  = "/login"
	Signup = Login + "/signup"
	Logout = "/logout"
	Admin  = "/admin"

	Kits      = "/model_kits"
	NewKit    = Kits + "/new"
	KitCard   = Kits + "/:id"
	DeleteKit = Kits + "/:id/delete"
)

func Path() map[string]string {
	return map[string]string{
		"Home":   Home,
		"Login":  Login,
		"Signup": Signup,
		"Logout": Logout,
		"Admin":  Admin,
		"Kits":   Kits,
		"NewKit": NewKit,
	}
}
