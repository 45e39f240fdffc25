package entity

// Supplier representa un proveedor. Los productos lo referencian por ID
// (referencia débil); el proveedor no es dueño del ciclo de vida de sus productos.
type Supplier struct {
	Meta
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
}
