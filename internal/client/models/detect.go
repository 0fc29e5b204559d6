package models

import "strings"

type categoryKeywords struct {
	category TaskCategory
	keywords []string
}

// Walked in order; the first category with a matching keyword wins.
var categoryRules = []categoryKeywords{
	{CategorySoftware, []string{
		"software", "programa", "instalar", "aplicacion", "aplicación", "app",
		"licencia", "office", "windows", "linux", "actualizar", "actualización",
		"antivirus", "vpn", "correo", "outlook", "navegador", "driver", "sistema operativo",
	}},
	{CategoryNetwork, []string{
		"red", "wifi", "wi-fi", "router", "switch", "internet", "cableado",
		"dns", "dhcp", "firewall", "conexion", "conexión", "ethernet", "cable de red",
	}},
	{CategoryHardware, []string{
		"hardware", "computadora", "pc", "laptop", "portatil", "portátil",
		"impresora", "monitor", "teclado", "mouse", "raton", "ratón", "disco",
		"memoria", "cpu", "fuente de poder", "equipo",
	}},
	{CategoryDocumentation, []string{
		"documentar", "documentacion", "documentación", "manual", "informe",
		"reporte", "inventario", "procedimiento", "guia", "guía",
	}},
	{CategoryMaintenance, []string{
		"mantenimiento", "limpieza", "limpiar", "respaldo", "backup",
		"preventivo", "revision", "revisión", "reparar",
	}},
}

// DetectCategory guesses a task category from its title. Matching is a
// case-insensitive substring test; titles matching nothing are Hardware.
func DetectCategory(title string) TaskCategory {
	t := strings.ToLower(title)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(t, kw) {
				return rule.category
			}
		}
	}
	return CategoryHardware
}
