// Package domain contains the marketplace entities and the business-level
// validation rules that apply to them before any database interaction.
package domain
