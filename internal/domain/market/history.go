package market

import (
	"math/rand"
	"time"
)

// HistoryDays 為歷史序列涵蓋的天數；序列本身共 HistoryDays+1 個點（含今日）。
const HistoryDays = 30

const (
	historyStartDiscount = 0.9  // 序列起點折價
	historyNoiseScale    = 0.02 // 每日雜訊佔現價比例
	historyNoiseBias     = 0.48 // 雜訊略偏負向
	historyClampFloor    = 0.7  // 價格下限（現價倍數）
	historyBlendWeight   = 0.02 // 線性趨勢混合權重
)

// HistoricalPoint 為圖表使用的單日 (日期, 價格) 資料點。
type HistoricalPoint struct {
	Date  string
	Price float64
}

// GenerateHistory 產生從今日回推 HistoryDays 天、收斂到現價的合成歷史序列。
// 序列僅保證「終點等於現價」且「不低於現價的 0.7 倍」，不代表真實歷史。
func GenerateHistory(symbol string, currentPrice float64, now time.Time, rng *rand.Rand) []HistoricalPoint {
	points := make([]HistoricalPoint, 0, HistoryDays+1)
	price := currentPrice * historyStartDiscount

	for i := HistoryDays; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)

		change := (rng.Float64() - historyNoiseBias) * (currentPrice * historyNoiseScale)
		price += change
		if floor := currentPrice * historyClampFloor; price < floor {
			price = floor
		}

		// 依剩餘天數做線性混合，使序列收斂到現價。
		trendFactor := float64(i) / float64(HistoryDays)
		price = price*(1-trendFactor*historyBlendWeight) + currentPrice*trendFactor*historyBlendWeight

		points = append(points, HistoricalPoint{
			Date:  date.Format("2006-01-02"),
			Price: Round2(price),
		})
	}

	// 終點強制等於現價。
	points[len(points)-1].Price = currentPrice
	return points
}
