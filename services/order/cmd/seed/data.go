package main

import "github.com/eliezerphilippe0-spec/union-digitale-sub006/services/order/internal/domain"

var pickupHubs = []domain.PickupHub{
	{ID: "hub-pap-centre", Name: "Port-au-Prince Centre", City: "Port-au-Prince", Department: "Ouest", Address: "Rue Pavée, Centre-ville", Phone: "+50928100000", Active: true},
	{ID: "hub-petion-ville", Name: "Pétion-Ville", City: "Pétion-Ville", Department: "Ouest", Address: "Rue Grégoire", Phone: "+50928100001", Active: true},
	{ID: "hub-delmas", Name: "Delmas 33", City: "Delmas", Department: "Ouest", Address: "Delmas 33", Active: true},
	{ID: "hub-cap-haitien", Name: "Cap-Haïtien", City: "Cap-Haïtien", Department: "Nord", Address: "Rue 24-A", Phone: "+50928100002", Active: true},
	{ID: "hub-gonaives", Name: "Gonaïves", City: "Gonaïves", Department: "Artibonite", Address: "Avenue des Dattes", Active: true},
	{ID: "hub-les-cayes", Name: "Les Cayes", City: "Les Cayes", Department: "Sud", Address: "Rue Geffrard", Active: true},
	{ID: "hub-jacmel", Name: "Jacmel", City: "Jacmel", Department: "Sud-Est", Address: "Rue du Commerce", Active: true},
	{ID: "hub-hinche", Name: "Hinche", City: "Hinche", Department: "Centre", Address: "Place Charlemagne Péralte", Active: false},
}

var sampleProducts = []domain.Product{
	{ID: "prod-riz-5kg", Name: "Diri Lokal 5kg", Price: 9.50, Active: true, StoreID: "store-marche-artibonite", Category: "food"},
	{ID: "prod-kafe-500g", Name: "Kafe Rebo 500g", Price: 7.25, Active: true, StoreID: "store-marche-artibonite", Category: "food"},
	{ID: "prod-pwa-nwa-2kg", Name: "Pwa Nwa 2kg", Price: 4.80, Active: true, StoreID: "store-marche-artibonite", Category: "food"},
	{ID: "prod-phone-a15", Name: "Smartphone A15", Price: 189.00, Active: true, StoreID: "store-digicel-plaza", Category: "electronics"},
	{ID: "prod-solar-lamp", Name: "Lanp Solè", Price: 24.99, Active: true, StoreID: "store-digicel-plaza", Category: "electronics"},
	{ID: "prod-karabela", Name: "Rad Karabela", Price: 45.00, Active: true, StoreID: "store-atelier-jacmel", Category: "fashion"},
	{ID: "prod-course-excel", Name: "Kou Excel an Kreyòl", Price: 30.00, Active: true, StoreID: "store-akademi", Category: "courses"},
	{ID: "prod-ebook-biznis", Name: "Ebook: Lanse yon biznis", Price: 9.99, Active: true, StoreID: "store-akademi", Category: "digital"},
	{ID: "prod-retired-radio", Name: "Radyo AM/FM", Price: 15.00, Active: false, StoreID: "store-digicel-plaza", Category: "electronics"},
}
