package models

import "fmt"

type Service string

const (
	ServiceBasicWash            Service = "Basic Wash"
	ServiceStandardWash         Service = "Standard Wash"
	ServicePremiumWash          Service = "Premium Wash"
	ServiceMonthlySubscription  Service = "Monthly Subscription"
	ServiceBiweeklySubscription Service = "Biweekly Subscription"
	ServiceWeeklySubscription   Service = "Weekly Subscription"
)

type ServiceInfo struct {
	Name         Service  `json:"name"`
	PriceUSD     int      `json:"price_usd"`
	Subscription bool     `json:"subscription"`
	Description  string   `json:"description,omitempty"`
	Features     []string `json:"features,omitempty"`
}

// Catalog lists every bookable service in display order.
var Catalog = []ServiceInfo{
	{
		Name:        ServiceBasicWash,
		PriceUSD:    45,
		Description: "Perfect for regular maintenance and surface cleaning.",
		Features:    []string{"Exterior Hand Wash", "Tire Shine", "Interior Vacuum"},
	},
	{
		Name:        ServiceStandardWash,
		PriceUSD:    75,
		Description: "Includes everything in Basic plus more detailed attention.",
		Features:    []string{"Full Exterior Wash", "Wheel Detailing", "Glass Cleaning", "Dashboard Wipe Down"},
	},
	{
		Name:        ServicePremiumWash,
		PriceUSD:    125,
		Description: "Complete detailing package for the ultimate shine.",
		Features:    []string{"Deep Interior Clean", "Upholstery Shampoo", "Engine Bay Cleaning", "Paint Protection"},
	},
	{Name: ServiceMonthlySubscription, PriceUSD: 99, Subscription: true},
	{Name: ServiceBiweeklySubscription, PriceUSD: 189, Subscription: true},
	{Name: ServiceWeeklySubscription, PriceUSD: 359, Subscription: true},
}

func (s Service) Valid() bool {
	_, ok := LookupService(string(s))
	return ok
}

func LookupService(name string) (ServiceInfo, bool) {
	for _, info := range Catalog {
		if string(info.Name) == name {
			return info, true
		}
	}

	return ServiceInfo{}, false
}

// Label renders a service the way the booking form lists it, e.g. "Basic Wash ($45)".
func (i ServiceInfo) Label() string {
	return fmt.Sprintf("%s ($%d)", i.Name, i.PriceUSD)
}
