package svd

import "encoding/xml"

// Addressable is a register or cluster placed at an offset from its parent.
type Addressable interface {
	GetAddressOffset() Integer
}

type DeviceElement struct {
	XMLName          xml.Name           `xml:"device"`
	Name             string             `xml:"name"`
	Description      string             `xml:"description"`
	Series           string             `xml:"series"`
	Version          string             `xml:"version"`
	Vendor           string             `xml:"vendor"`
	VendorId         string             `xml:"vendorID"`
	CPU              CPUElement         `xml:"cpu"`
	AddressableWidth Integer            `xml:"addressUnitBits"`
	BitWidth         Integer            `xml:"width"`
	RegisterSize     Integer            `xml:"size"`
	DefaultAccess    string             `xml:"access"`
	ResetValue       Integer            `xml:"resetValue"`
	ResetMask        Integer            `xml:"resetMask"`
	Peripherals      PeripheralsElement `xml:"peripherals"`
}

// DefaultRegisterSize returns the register width in bits used when neither a
// register nor any of its parents declares one. Some files only carry the
// device "width", so that is used before falling back to 32.
func (d *DeviceElement) DefaultRegisterSize() uint64 {
	switch {
	case d.RegisterSize > 0:
		return uint64(d.RegisterSize)
	case d.BitWidth > 0:
		return uint64(d.BitWidth)
	default:
		return 32
	}
}

type CPUElement struct {
	Name                string  `xml:"name"`
	Revision            string  `xml:"revision"`
	Endian              string  `xml:"endian"`
	MPUPresent          string  `xml:"mpuPresent"`
	FPUPresent          string  `xml:"fpuPresent"`
	NVICPriorityBits    Integer `xml:"nvicPrioBits"`
	VendorSystickConfig bool    `xml:"vendorSystickConfig"`
}

type PeripheralsElement struct {
	Elements []PeripheralElement `xml:"peripheral"`
}

func (p PeripheralsElement) Find(name string) (int, bool) {
	if len(name) > 0 {
		for i, pp := range p.Elements {
			if pp.Name == name {
				return i, true
			}
		}
	}
	return -1, false
}

type PeripheralElement struct {
	Name          string                `xml:"name"`
	Description   string                `xml:"description"`
	Group         string                `xml:"groupName"`
	BaseAddress   Integer               `xml:"baseAddress"`
	RegisterSize  Integer               `xml:"size"`
	Access        string                `xml:"access"`
	AddressBlocks []AddressBlockElement `xml:"addressBlock"`
	Interrupts    []InterruptElement    `xml:"interrupt"`
	Registers     RegistersElement      `xml:"registers"`
	DerivedFrom   string                `xml:"derivedFrom,attr"`

	// InheritsRegisters is set by Resolve when the register list was copied
	// from the derivedFrom peripheral.
	InheritsRegisters bool `xml:"-"`
}

// Extent returns the number of bytes, counted from the base address, covered
// by the peripheral's address blocks. It is zero if there are none.
func (p *PeripheralElement) Extent() uint64 {
	var extent uint64
	for _, block := range p.AddressBlocks {
		if end := uint64(block.Offset + block.Size); end > extent {
			extent = end
		}
	}
	return extent
}

type AddressBlockElement struct {
	Offset Integer `xml:"offset"`
	Size   Integer `xml:"size"`
	Usage  string  `xml:"usage"`
}

type InterruptElement struct {
	Name        string  `xml:"name"`
	Description string  `xml:"description"`
	Value       Integer `xml:"value"`
}

type RegistersElement struct {
	RegisterElements []RegisterElement `xml:"register"`
	ClusterElements  []ClusterElement  `xml:"cluster"`
}

func (r RegistersElement) Empty() bool {
	return len(r.RegisterElements) == 0 && len(r.ClusterElements) == 0
}

type ClusterElement struct {
	Name          string            `xml:"name"`
	Description   string            `xml:"description"`
	Count         Integer           `xml:"dim"`
	Increment     Integer           `xml:"dimIncrement"`
	DimIndex      string            `xml:"dimIndex"`
	AddressOffset Integer           `xml:"addressOffset"`
	RegisterSize  Integer           `xml:"size"`
	Registers     []RegisterElement `xml:"register"`
	Clusters      []ClusterElement  `xml:"cluster"`
}

func (c ClusterElement) GetAddressOffset() Integer {
	return c.AddressOffset
}

type RegisterElement struct {
	Name          string        `xml:"name"`
	Description   string        `xml:"description"`
	AddressOffset Integer       `xml:"addressOffset"`
	Size          Integer       `xml:"size"`
	Fields        FieldElements `xml:"fields"`
	Count         Integer       `xml:"dim"`
	Increment     Integer       `xml:"dimIncrement"`
	DimIndex      string        `xml:"dimIndex"`
	Access        string        `xml:"access"`
	ResetValue    Integer       `xml:"resetValue"`
	Alternative   string        `xml:"alternateRegister"`
}

func (r RegisterElement) GetAddressOffset() Integer {
	return r.AddressOffset
}

type FieldElements struct {
	Elements []FieldElement `xml:"field"`
}

type FieldElement struct {
	Name             string                  `xml:"name"`
	Description      string                  `xml:"description"`
	BitOffset        Integer                 `xml:"bitOffset"`
	BitWidth         Integer                 `xml:"bitWidth"`
	Access           string                  `xml:"access"`
	EnumeratedValues EnumeratedValuesElement `xml:"enumeratedValues"`
}

type EnumeratedValuesElement struct {
	Name     string                   `xml:"name"`
	Elements []EnumeratedValueElement `xml:"enumeratedValue"`
}

type EnumeratedValueElement struct {
	Name        string  `xml:"name"`
	Description string  `xml:"description"`
	Value       Integer `xml:"value"`
}
