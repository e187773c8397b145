package model

// PropertyData holds one optional slice per wizard step. A nil slice means the
// step has not been filled in yet.
type PropertyData struct {
	Info      *Info      `json:"info,omitempty"`
	Amenities *Amenities `json:"amenities,omitempty"`
	Photos    *Photos    `json:"photos,omitempty"`
	Access    *Access    `json:"access,omitempty"`
	Rules     *Rules     `json:"rules,omitempty"`
	Guide     *Guide     `json:"guide,omitempty"`
	Payment   *Payment   `json:"payment,omitempty"`
}

type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeVilla     PropertyType = "villa"
	PropertyTypeCottage   PropertyType = "cottage"
)

type Info struct {
	PropertyName     *string       `json:"propertyName,omitempty" validate:"omitempty,max=200"`
	Description      *string       `json:"description,omitempty" validate:"omitempty,max=5000"`
	FloorNumber      *string       `json:"floorNumber,omitempty" validate:"omitempty,max=20"`
	Address          *string       `json:"address,omitempty" validate:"omitempty,max=500"`
	Size             *string       `json:"size,omitempty" validate:"omitempty,max=50"`
	NumRooms         *int          `json:"numRooms,omitempty" validate:"omitempty,min=0,max=50"`
	NumBathrooms     *int          `json:"numBathrooms,omitempty" validate:"omitempty,min=0,max=50"`
	Type             *PropertyType `json:"type,omitempty" validate:"omitempty,oneof=apartment house villa cottage"`
	CITQFile         *string       `json:"citqFile,omitempty" validate:"omitempty,url"`
	ReservationsFile *string       `json:"reservationsFile,omitempty" validate:"omitempty,url"`
	CheckInTime      *string       `json:"checkInTime,omitempty" validate:"omitempty,datetime=15:04"`
	CheckOutTime     *string       `json:"checkOutTime,omitempty" validate:"omitempty,datetime=15:04"`
}

type ZoneType string

const (
	ZoneLivingRoom ZoneType = "living_room"
	ZoneKitchen    ZoneType = "kitchen"
	ZoneBedroom    ZoneType = "bedroom"
	ZoneBathroom   ZoneType = "bathroom"
	ZoneExterior   ZoneType = "exterior"
	ZoneFloorPlan  ZoneType = "floor_plan"
)

// ZoneRef names a physical area. Index is 1-based for bedrooms and bathrooms
// and 0 for single areas.
type ZoneRef struct {
	Type  ZoneType `json:"type" validate:"required,oneof=living_room kitchen bedroom bathroom exterior floor_plan"`
	Index int      `json:"index,omitempty" validate:"min=0"`
}

// RoomAmenity is one checked item of a bedroom or bathroom checklist.
type RoomAmenity struct {
	ZoneType  ZoneType `json:"zoneType" validate:"required,oneof=bedroom bathroom"`
	ZoneIndex int      `json:"zoneIndex" validate:"min=1"`
	ItemID    string   `json:"itemId" validate:"required,max=100"`
}

type Amenities struct {
	Selected          []string      `json:"selected,omitempty" validate:"omitempty,dive,required,max=100"`
	Rooms             []RoomAmenity `json:"rooms,omitempty" validate:"omitempty,dive"`
	PoolOpeningDate   *string       `json:"poolOpeningDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	HotTubOpeningDate *string       `json:"hotTubOpeningDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type Photo struct {
	Zone ZoneRef `json:"zone"`
	URL  string  `json:"url" validate:"required,url"`
}

type Photos struct {
	Items           []Photo  `json:"items,omitempty" validate:"omitempty,dive"`
	ExternalLinks   []string `json:"externalLinks,omitempty" validate:"omitempty,dive,url"`
	GoogleDriveLink *string  `json:"googleDriveLink,omitempty" validate:"omitempty,url"`
}

// Access is kept for records created before the access step left the flow.
type Access struct {
	Instructions *string `json:"instructions,omitempty"`
	VideoURL     *string `json:"videoUrl,omitempty"`
}

type Rules struct {
	Smoking          *bool    `json:"smoking,omitempty"`
	Pets             *bool    `json:"pets,omitempty"`
	Events           *bool    `json:"events,omitempty"`
	QuietHours       *string  `json:"quietHours,omitempty" validate:"omitempty,max=100"`
	ProvidesCleaning *bool    `json:"providesCleaning,omitempty"`
	CleaningFee      *float64 `json:"cleaningFee,omitempty" validate:"omitempty,min=0"`
	MaxGuests        *int     `json:"maxGuests,omitempty" validate:"omitempty,min=0,max=100"`
	MaxPets          *int     `json:"maxPets,omitempty" validate:"omitempty,min=0,max=20"`
}

type Guide struct {
	WifiDetails             *string  `json:"wifiDetails,omitempty" validate:"omitempty,max=1000"`
	WifiRouterPhoto         *string  `json:"wifiRouterPhoto,omitempty" validate:"omitempty,url"`
	WifiSpeedTestScreenshot *string  `json:"wifiSpeedTestScreenshot,omitempty" validate:"omitempty,url"`
	TourVideo               *string  `json:"tourVideo,omitempty" validate:"omitempty,url"`
	FirstAidKitPhoto        *string  `json:"firstAidKitPhoto,omitempty" validate:"omitempty,url"`
	LockVideoURL            *string  `json:"lockVideoUrl,omitempty" validate:"omitempty,url"`
	LockPhoto               *string  `json:"lockPhoto,omitempty" validate:"omitempty,url"`
	KitchenPhotos           []string `json:"kitchenPhotos,omitempty" validate:"omitempty,dive,url"`
	ACVideoURL              *string  `json:"acVideoUrl,omitempty" validate:"omitempty,url"`
	ExtrasPhotos            []string `json:"extrasPhotos,omitempty" validate:"omitempty,dive,url"`
	LuggageList             *string  `json:"luggageList,omitempty" validate:"omitempty,max=2000"`
	EmergencyContacts       *string  `json:"emergencyContacts,omitempty" validate:"omitempty,max=2000"`
}

type Payment struct {
	BankName           *string `json:"bankName,omitempty" validate:"omitempty,max=100"`
	AccountNumber      *string `json:"accountNumber,omitempty" validate:"omitempty,max=34"`
	RoutingNumber      *string `json:"routingNumber,omitempty" validate:"omitempty,max=34"`
	AccountHolder      *string `json:"accountHolder,omitempty" validate:"omitempty,max=200"`
	TransitInstitution *string `json:"transitInstitution,omitempty" validate:"omitempty,max=20"`
	BranchNumber       *string `json:"branchNumber,omitempty" validate:"omitempty,max=20"`
}
