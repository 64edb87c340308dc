package httpapi

// dashboardPage is the single-page dashboard. It polls /api/data and
// /api/history every five seconds and renders the rolling window with
// Chart.js from the CDN.
const dashboardPage = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>Air Monitor</title>
  <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style>
    body {
      background: #0b0d18;
      color: #f2f2f2;
      font-family: system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
      margin: 0;
      padding: 1.5rem;
    }
    h1 { margin: 0 0 0.25rem 0; font-size: 1.6rem; }
    .subtitle { color: #9aa4c6; font-size: 0.9rem; margin-bottom: 1.2rem; }
    .grid-main {
      display: grid;
      grid-template-columns: repeat(auto-fit, minmax(150px, 1fr));
      gap: 1rem;
      margin-bottom: 1rem;
    }
    .grid-system {
      display: grid;
      grid-template-columns: repeat(auto-fit, minmax(120px, 1fr));
      gap: 0.75rem;
      margin-bottom: 1.5rem;
    }
    .card {
      background: #151a2b;
      border-radius: 0.75rem;
      padding: 0.9rem 1.1rem;
      box-shadow: 0 12px 25px rgba(0,0,0,0.45);
      border: 1px solid #22263a;
    }
    .label {
      font-size: 0.78rem;
      text-transform: uppercase;
      letter-spacing: 0.09em;
      color: #a1aac7;
      margin-bottom: 0.35rem;
    }
    .value {
      font-size: 1.9rem;
      font-weight: 600;
      display: flex;
      align-items: baseline;
      gap: 0.25rem;
    }
    .unit { font-size: 0.8rem; color: #9aa4c6; }
    .small-value { font-size: 1.1rem; }
    .aq-good { color: #4caf50; }
    .aq-moderate { color: #ffc107; }
    .aq-unhealthy-sg { color: #ff9800; }
    .aq-unhealthy { color: #f44336; }
    .aq-very-unhealthy { color: #e040fb; }
    .aq-hazardous { color: #9c27b0; }
    .status-line { margin-bottom: 1rem; font-size: 0.8rem; color: #9aa4c6; }
    .status-bad { color: #ff7961; }
    .charts {
      display: grid;
      grid-template-columns: 1fr;
      gap: 1rem;
      max-width: 1000px;
    }
    canvas {
      background: #131726;
      border-radius: 0.75rem;
      padding: 0.5rem;
      border: 1px solid #1f2437;
    }
    @media (min-width: 900px) {
      .charts { grid-template-columns: 1fr 1fr; }
    }
    #shutdownBtn {
      background: #c0392b;
      color: white;
      padding: 10px 16px;
      border: none;
      border-radius: 6px;
      font-size: 14px;
      margin-bottom: 1rem;
      cursor: pointer;
    }
  </style>
</head>
<body>
  <h1>Air Monitor</h1>
  <button id="shutdownBtn">Shutdown Pi</button>
  <div class="subtitle">Raspberry Pi &bull; AHT20 &bull; PMSA003I &mdash; Spot-check mode</div>

  <div class="grid-main">
    <div class="card">
      <div class="label">Temperature</div>
      <div class="value"><span id="temp_f">--</span><span class="unit">&deg;F</span></div>
    </div>
    <div class="card">
      <div class="label">Humidity</div>
      <div class="value"><span id="humidity">--</span><span class="unit">% RH</span></div>
    </div>
    <div class="card">
      <div class="label">PM1.0</div>
      <div class="value"><span id="pm1">--</span><span class="unit">&micro;g/m&sup3;</span></div>
    </div>
    <div class="card">
      <div class="label">PM2.5</div>
      <div class="value"><span id="pm25">--</span><span class="unit">&micro;g/m&sup3;</span></div>
    </div>
    <div class="card">
      <div class="label">PM10</div>
      <div class="value"><span id="pm10">--</span><span class="unit">&micro;g/m&sup3;</span></div>
    </div>
    <div class="card">
      <div class="label">Air Quality</div>
      <div class="value small-value"><span id="aqi_cat">--</span></div>
    </div>
  </div>

  <div class="grid-system">
    <div class="card">
      <div class="label">CPU Temp</div>
      <div class="value small-value"><span id="cpu_temp">--</span><span class="unit">&deg;F</span></div>
    </div>
    <div class="card">
      <div class="label">WiFi Signal</div>
      <div class="value small-value"><span id="wifi_rssi">--</span><span class="unit">dBm</span></div>
    </div>
    <div class="card">
      <div class="label">Uptime</div>
      <div class="value small-value"><span id="uptime">--:--:--</span></div>
    </div>
    <div class="card">
      <div class="label">Pi IP</div>
      <div class="value small-value"><span id="ip_addr">--</span></div>
    </div>
  </div>

  <div id="status" class="status-line">Waiting for data&hellip;</div>

  <div class="charts">
    <canvas id="tempHumChart" height="160"></canvas>
    <canvas id="pmChart" height="160"></canvas>
  </div>

<script>
const REFRESH_MS = 5000;

let tempHumChart, pmChart;

function aqiClass(cat) {
  if (!cat) return "";
  const c = cat.toLowerCase();
  if (c.startsWith("good")) return "aq-good";
  if (c.startsWith("moderate")) return "aq-moderate";
  if (c.startsWith("unhealthy for sensitive")) return "aq-unhealthy-sg";
  if (c.startsWith("very unhealthy")) return "aq-very-unhealthy";
  if (c.startsWith("unhealthy")) return "aq-unhealthy";
  if (c.startsWith("hazardous")) return "aq-hazardous";
  return "";
}

function lineChart(ctx, datasets) {
  return new Chart(ctx, {
    type: "line",
    data: { labels: [], datasets: datasets },
    options: {
      responsive: true,
      animation: false,
      scales: {
        x: {
          ticks: { color: "#aaa", maxRotation: 45, minRotation: 45 },
          grid: { display: false }
        },
        y: {
          ticks: { color: "#aaa" },
          grid: { color: "#333" }
        }
      },
      plugins: { legend: { labels: { color: "#eee" } } }
    }
  });
}

function initCharts() {
  const thCtx = document.getElementById("tempHumChart").getContext("2d");
  const pmCtx = document.getElementById("pmChart").getContext("2d");

  tempHumChart = lineChart(thCtx, [
    { label: "Temp (°F)", data: [], borderWidth: 2, tension: 0.2 },
    { label: "Humidity (%RH)", data: [], borderWidth: 2, tension: 0.2 }
  ]);
  pmChart = lineChart(pmCtx, [
    { label: "PM1.0", data: [], borderWidth: 2, tension: 0.2 },
    { label: "PM2.5", data: [], borderWidth: 2, tension: 0.2 },
    { label: "PM10", data: [], borderWidth: 2, tension: 0.2 }
  ]);
}

function updateCards(payload) {
  const d = payload.data;
  const sys = payload.system;

  document.getElementById("temp_f").textContent = d.temp_f.toFixed(1);
  document.getElementById("humidity").textContent = d.humidity.toFixed(1);
  document.getElementById("pm1").textContent = d.pm1 != null ? d.pm1 : "--";
  document.getElementById("pm25").textContent = d.pm25 != null ? d.pm25 : "--";
  document.getElementById("pm10").textContent = d.pm10 != null ? d.pm10 : "--";

  const aqiEl = document.getElementById("aqi_cat");
  aqiEl.textContent = d.aqi_category;
  aqiEl.className = aqiClass(d.aqi_category);

  document.getElementById("cpu_temp").textContent =
    sys.cpu_temp_f != null ? sys.cpu_temp_f.toFixed(1) : "--";
  document.getElementById("wifi_rssi").textContent =
    sys.wifi_rssi != null ? sys.wifi_rssi : "--";
  document.getElementById("uptime").textContent = sys.uptime || "--:--:--";
  document.getElementById("ip_addr").textContent = sys.ip || "--";

  const statusEl = document.getElementById("status");
  const when = new Date(d.ts * 1000).toLocaleTimeString();
  statusEl.textContent = "Last update " + when + " • 15-minute live window";
  statusEl.className = "status-line";
}

function updateCharts(points) {
  const labels = points.map(p => new Date(p.ts * 1000).toLocaleTimeString());

  tempHumChart.data.labels = labels;
  tempHumChart.data.datasets[0].data = points.map(p => p.temp_f);
  tempHumChart.data.datasets[1].data = points.map(p => p.humidity);
  tempHumChart.update("none");

  pmChart.data.labels = labels;
  pmChart.data.datasets[0].data = points.map(p => p.pm1);
  pmChart.data.datasets[1].data = points.map(p => p.pm25);
  pmChart.data.datasets[2].data = points.map(p => p.pm10);
  pmChart.update("none");
}

async function refreshAll() {
  const statusEl = document.getElementById("status");
  try {
    const [latestRes, histRes] = await Promise.all([
      fetch("/api/data"),
      fetch("/api/history")
    ]);

    const latestJson = await latestRes.json();
    const histJson = await histRes.json();

    if (!latestJson.ok) {
      statusEl.textContent = "Error: " + (latestJson.error || "unknown");
      statusEl.className = "status-line status-bad";
      return;
    }

    updateCards(latestJson);
    updateCharts(histJson.points || []);
  } catch (e) {
    statusEl.textContent = "Error talking to Pi: " + e;
    statusEl.className = "status-line status-bad";
  }
}

window.addEventListener("load", () => {
  initCharts();
  refreshAll();
  setInterval(refreshAll, REFRESH_MS);
});

document.getElementById("shutdownBtn").onclick = function () {
  if (!confirm("Are you sure you want to shut down the Pi?")) return;
  const token = prompt("Shutdown token:");
  if (token == null) return;

  fetch("/shutdown?token=" + encodeURIComponent(token))
    .then(response => response.text())
    .then(msg => alert(msg))
    .catch(() => alert("Shutdown request failed."));
};
</script>
</body>
</html>
`
