package domain

type Client struct {
	ID         int    `json:"idCliente"`
	FirstName  string `json:"nombre"`
	LastName   string `json:"apellido"`
	NationalID string `json:"cedula"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"telefono,omitempty"`
	Active     bool   `json:"activo"`
}

type Vehicle struct {
	ID                  int     `json:"idVehiculo"`
	Description         string  `json:"descripcion"`
	CategoryID          int     `json:"idCategoria"`
	CategoryDescription string  `json:"categoriaDescripcion"`
	DailyRate           float64 `json:"costo"`
}

type Extra struct {
	ID          int     `json:"idExtra"`
	Description string  `json:"descripcion"`
	DailyRate   float64 `json:"costo"`
	Active      bool    `json:"activo"`
}

type User struct {
	ID        int    `json:"idUsuario"`
	Username  string `json:"username"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"email"`
	RoleID    int    `json:"idRol"`
	RoleName  string `json:"nombreRol"`
	Active    bool   `json:"activo"`
}

type Branch struct {
	ID      int    `json:"idSucursal"`
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
	Phone   string `json:"telefono,omitempty"`
	Active  bool   `json:"activo"`
}

type ContractState struct {
	ID          int    `json:"idEstado"`
	Description string `json:"descripcion"`
	Active      bool   `json:"activo"`
}
