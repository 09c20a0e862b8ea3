package entity

// LocationID names a municipal collection zone. Values are produced only by
// validator.LocationID, so everything downstream (storages, the feed client)
// can trust the charset and length without re-checking.
type LocationID string

func (id LocationID) String() string {
	return string(id)
}
