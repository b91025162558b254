// Package builder annotates a program database with the peripherals of an SVD
// device: memory blocks for the peripheral regions, one structure per
// register block and a label plus defined data at every peripheral.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"

	"omibyte.io/svdload/memmap"
	"omibyte.io/svdload/program"
	"omibyte.io/svdload/svd"
	"omibyte.io/svdload/targets"
)

type builder struct {
	device    *svd.DeviceElement
	db        *program.Database
	options   Options
	target    targets.TargetInfo
	namespace *program.Namespace
	progress  io.Writer
	report    *Report

	// Structures already built, keyed by peripheral name.
	structures map[string]*program.Structure
}

// Build runs the load pass for device against db. Failures of individual
// blocks, labels or data are recorded in the report and the pass continues,
// unless options.Strict is set. The returned error is only non-nil when the
// pass could not run to completion.
func Build(ctx context.Context, device *svd.DeviceElement, db *program.Database, options Options) (*Report, error) {
	if device == nil {
		return nil, ErrNoDevice
	}
	if db == nil {
		return nil, ErrNoDatabase
	}

	b := &builder{
		device:     device,
		db:         db,
		options:    options,
		progress:   options.Progress,
		report:     &Report{Device: device.Name},
		structures: map[string]*program.Structure{},
	}
	if b.progress == nil {
		b.progress = io.Discard
	}

	if err := b.checkCPU(); err != nil {
		return b.report, err
	}
	if db.BigEndian {
		b.printf("Currently only little endian programs are supported.\n")
		return b.report, fmt.Errorf("%w: program %s is big endian", ErrUnsupportedEndian, db.Name)
	}

	if target, ok := options.targets().Lookup(device); ok {
		b.target = target
		if len(target.Aliases) > 0 {
			b.printf("%s detected, tweaks enabled.\n", device.Name)
		}
	}

	steps := []func(context.Context) error{
		b.createNamespace,
		b.createRegions,
		b.createBlocks,
		b.createPeripherals,
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return b.report, err
		}
		if err := step(ctx); err != nil {
			return b.report, err
		}
	}
	return b.report, nil
}

func (b *builder) printf(format string, args ...any) {
	fmt.Fprintf(b.progress, format, args...)
}

// fail records a failure. In strict mode the failure is returned so the pass
// stops.
func (b *builder) fail(err error) error {
	glog.Warning(err)
	b.report.Failures = append(b.report.Failures, err)
	if b.options.Strict {
		return err
	}
	return nil
}

func (b *builder) checkCPU() error {
	cpu := b.device.CPU
	if len(cpu.Name) > 0 && !strings.HasPrefix(strings.ToUpper(cpu.Name), "CM") {
		b.printf("Currently only Cortex-M CPUs are supported, so this might not work...\n")
		b.printf("Supplied CPU type was: %s\n", cpu.Name)
		glog.Warningf("unsupported cpu %s", cpu.Name)
	}

	endian := strings.ToLower(strings.TrimSpace(cpu.Endian))
	if len(endian) > 0 && endian != "little" {
		b.printf("Currently only little endian devices are supported.\n")
		b.printf("Supplied endian mode was: %s\n", cpu.Endian)
		return fmt.Errorf("%w: %s", ErrUnsupportedEndian, cpu.Endian)
	}
	return nil
}

func (b *builder) createNamespace(context.Context) error {
	name := b.options.namespace()
	if ns := b.db.Symbols.Namespace(name, nil); ns != nil {
		b.namespace = ns
		return nil
	}

	ns, err := b.db.Symbols.CreateNamespace(nil, name, program.Analysis)
	if err != nil {
		return fmt.Errorf("namespace %s: %w", name, err)
	}
	b.namespace = ns
	return nil
}

func (b *builder) createRegions(context.Context) error {
	b.printf("Generating memory regions...\n")

	regions, errs := memmap.FromDevice(b.device)
	for _, err := range errs {
		if err := b.fail(err); err != nil {
			return err
		}
	}
	b.report.Original = regions
	b.report.Regions = memmap.Reduce(regions)

	b.printf("Original regions: %s\n", joinRegions(b.report.Original))
	b.printf("Reduced regions: %s\n", joinRegions(b.report.Regions))
	return nil
}

func joinRegions(regions []memmap.Region) string {
	names := make([]string, 0, len(regions))
	for _, r := range regions {
		names = append(names, r.String())
	}
	return strings.Join(names, ", ")
}

func (b *builder) createBlocks(ctx context.Context) error {
	b.printf("Generating memory blocks...\n")

	for _, r := range b.report.Regions {
		if err := ctx.Err(); err != nil {
			return err
		}
		b.printf("\t%s\n", r)

		if err := b.createBlock(r.Name(), r.Start, r.Len(), ""); err != nil {
			return err
		}
		if !b.target.Applies(r.Start) {
			continue
		}
		for _, alias := range b.target.Aliases {
			if err := b.createBlock(r.Name()+"_"+alias.Suffix, r.Start+alias.Offset, r.Len(), alias.Comment); err != nil {
				return err
			}
		}
	}

	b.printf("\tDone!\n")
	return nil
}

func (b *builder) createBlock(name string, start, length uint64, comment string) error {
	block, err := b.db.Memory.CreateUninitializedBlock(name, program.Address(start), length)
	if err != nil {
		if errors.Is(err, program.ErrMemoryConflict) {
			b.printf("\tFailed to generate due to conflict in memory block for: %s\n", name)
		} else {
			b.printf("\tFailed to generate memory block for: %s\n", name)
		}
		return b.fail(fmt.Errorf("block %s: %w", name, err))
	}

	block.Perm = program.Read | program.Write | program.Volatile
	block.Comment = comment
	block.Source = program.UserDefined
	b.report.Blocks = append(b.report.Blocks, block)
	return nil
}

func (b *builder) createPeripherals(ctx context.Context) error {
	b.printf("Generating peripherals...\n")

	peripherals := b.device.Peripherals.Elements
	order, err := derivationOrder(peripherals)
	if err != nil {
		return err
	}

	for _, i := range order {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.createPeripheral(&peripherals[i]); err != nil {
			return err
		}
	}

	b.printf("\tDone!\n")
	return nil
}

func (b *builder) createPeripheral(p *svd.PeripheralElement) error {
	b.printf("\t%s\n", p.Name)

	registers := p.FlatRegisters(b.device.DefaultRegisterSize())
	if len(registers) == 0 {
		b.printf("\t\tNo registers.\n")
		b.report.Skipped = append(b.report.Skipped, p.Name)
		return nil
	}

	s, err := b.structure(p, registers)
	if err != nil {
		return err
	}

	base := uint64(p.BaseAddress)
	if err := b.place(p.Name, base, s); err != nil {
		return err
	}
	if !b.target.Applies(base) {
		return nil
	}
	for _, alias := range b.target.Aliases {
		if err := b.place(p.Name+"_"+alias.Suffix, base+alias.Offset, s); err != nil {
			return err
		}
	}
	return nil
}

// structure returns the register block type of p. A derived peripheral that
// inherited its registers shares the structure of its base.
func (b *builder) structure(p *svd.PeripheralElement, registers []svd.FlatRegister) (*program.Structure, error) {
	if p.InheritsRegisters {
		if s, ok := b.structures[p.DerivedFrom]; ok {
			b.printf("\t\t(reusing %s)\n", s.Name())
			b.structures[p.Name] = s
			return s, nil
		}
	}

	s := program.NewStructure(b.target.StructName(p.Name), structureSize(registers))
	for _, r := range registers {
		glog.V(1).Infof("%s.%s at %#x, %d bits", p.Name, r.Name, r.Offset, r.Size)
		if err := s.ReplaceAtOffset(r.Offset, typeForSize(r.Size), r.Name, r.Description); err != nil {
			if err := b.fail(fmt.Errorf("%s: %w", p.Name, err)); err != nil {
				return nil, err
			}
		}
	}

	b.db.DataTypes.AddDataType(s, program.ReplaceHandler)
	b.db.DataTypes.AddDataType(program.NewPointer(s, b.db.PointerSize), program.ReplaceHandler)
	b.structures[p.Name] = s
	b.report.Structures = append(b.report.Structures, s)
	return s, nil
}

// place labels addr with name and applies s there.
func (b *builder) place(name string, addr uint64, s *program.Structure) error {
	b.printf("\t\t%#x:%#x %s\n", addr, addr+s.Len(), name)

	label, err := b.db.Symbols.CreateLabel(program.Address(addr), name, b.namespace, program.UserDefined)
	if err != nil {
		b.printf("\t\tFailed to generate peripheral %s\n", name)
		return b.fail(fmt.Errorf("label %s: %w", name, err))
	}
	b.report.Labels = append(b.report.Labels, label)

	if _, err := b.db.Listing.CreateData(program.Address(addr), s); err != nil {
		b.printf("\t\tFailed to apply %s at %s\n", s.Name(), name)
		return b.fail(fmt.Errorf("data %s: %w", name, err))
	}
	return nil
}
