package scheduling

import (
	"sort"
	"time"

	"github.com/ahmadnk31/fixwise/internal/domain"
	"github.com/ahmadnk31/fixwise/pkg/types"
)

// FindAlternatives подбирает свободные слоты рядом с запрошенным временем.
//
// Кандидат подходит, если его нет среди booked и расстояние до requested
// лежит в [bufferMinutes, domain.AlternativeSearchWindowMinutes].
// Результат отсортирован по расстоянию, при равенстве сохраняется порядок сетки.
// Пустой результат допустим.
func FindAlternatives(
	requested types.TimeString,
	booked []types.TimeString,
	allSlots []types.TimeString,
	bufferMinutes int,
	maxResults int,
) []types.TimeString {
	if maxResults <= 0 || requested.Minutes() < 0 {
		return []types.TimeString{}
	}

	taken := make(map[int]struct{}, len(booked))
	for _, t := range booked {
		if m := t.Minutes(); m >= 0 {
			taken[m] = struct{}{}
		}
	}

	type candidate struct {
		slot     types.TimeString
		distance int
	}

	candidates := make([]candidate, 0, len(allSlots))
	for _, slot := range allSlots {
		m := slot.Minutes()
		if m < 0 {
			continue
		}
		if _, ok := taken[m]; ok {
			continue
		}

		distance := slot.DistanceMinutes(requested)
		if distance < bufferMinutes || distance > domain.AlternativeSearchWindowMinutes {
			continue
		}
		candidates = append(candidates, candidate{slot: slot, distance: distance})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	result := make([]types.TimeString, 0, min(maxResults, len(candidates)))
	for _, c := range candidates {
		if len(result) == maxResults {
			break
		}
		result = append(result, c.slot)
	}

	return result
}

// FindAlternativeDates просматривает дни requested+1 .. requested+lookaheadDays и
// возвращает те, на которые нет ни одного известного активного бронирования.
//
// busyDates берется из ограниченной выборки предстоящих дат, поэтому результат
// означает "скорее всего свободно", а не гарантию. Если latest не нулевая,
// дни позже нее пропускаются.
func FindAlternativeDates(
	requested time.Time,
	busyDates []time.Time,
	lookaheadDays int,
	maxResults int,
	latest time.Time,
) []time.Time {
	result := make([]time.Time, 0, maxResults)
	if maxResults <= 0 {
		return result
	}

	busy := make(map[time.Time]struct{}, len(busyDates))
	for _, d := range busyDates {
		busy[domain.DateOnly(d)] = struct{}{}
	}

	if !latest.IsZero() {
		latest = domain.DateOnly(latest)
	}

	for offset := 1; offset <= lookaheadDays && len(result) < maxResults; offset++ {
		candidate := domain.AddDays(requested, offset)
		if !latest.IsZero() && candidate.After(latest) {
			break
		}
		if _, ok := busy[candidate]; ok {
			continue
		}
		result = append(result, candidate)
	}

	return result
}
